package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/db"
)

// TATPurger removes a patient's turnaround-time records.
type TATPurger interface {
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}

// Cascade deletes a patient together with everything that references them.
type Cascade struct {
	patients Repository
	records  *record.Resolver
	tat      TATPurger
	tx       db.TxRunner
	logger   zerolog.Logger
}

func NewCascade(patients Repository, records *record.Resolver, tat TATPurger, tx db.TxRunner, logger zerolog.Logger) *Cascade {
	return &Cascade{
		patients: patients,
		records:  records,
		tat:      tat,
		tx:       tx,
		logger:   logger,
	}
}

// dependents is the deletion order for record categories.
func dependents() []record.Category {
	cats := record.FileSections()
	return append(cats,
		record.CategoryPatientFile,
		record.CategoryHandover,
		record.CategoryDischarge,
		record.CategoryClaim,
		record.CategoryDoctorNote,
		record.CategoryOperationRecord,
	)
}

// DeletePatient removes the patient and all dependent rows in one
// transaction and returns the number of dependent rows removed. The patient
// row itself is not counted.
func (c *Cascade) DeletePatient(ctx context.Context, id uuid.UUID) (int64, error) {
	log := c.logger.With().Str("patient_id", id.String()).Logger()

	var total int64
	err := c.tx.InTx(ctx, func(ctx context.Context) error {
		ok, err := c.patients.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("check patient: %w", err)
		}
		if !ok {
			return apperr.NotFound("patient %s not found", id)
		}

		for _, cat := range dependents() {
			n, err := c.records.DeleteCategories(ctx, id, cat)
			if err != nil {
				return err
			}
			log.Debug().Str("category", string(cat)).Int64("deleted", n).Msg("cascade step")
			total += n
		}

		n, err := c.tat.DeleteByPatient(ctx, id)
		if err != nil {
			return err
		}
		log.Debug().Str("category", "tat_record").Int64("deleted", n).Msg("cascade step")
		total += n

		if _, err := c.patients.Delete(ctx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int64("dependents", total).Msg("patient deleted")
	return total, nil
}
