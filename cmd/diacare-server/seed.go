package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diacare/diacare/internal/config"
	"github.com/diacare/diacare/internal/domain/appointment"
	"github.com/diacare/diacare/internal/domain/doctor"
	"github.com/diacare/diacare/internal/domain/patient"
	"github.com/diacare/diacare/internal/domain/prescription"
	"github.com/diacare/diacare/internal/domain/vitals"
	"github.com/diacare/diacare/internal/platform/store"
)

// seedCmd fills the local file store with a small demo dataset so the server
// can be exercised without a remote store.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write demo fixtures to the local data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg.DataDir)
		},
	}
}

func runSeed(ctx context.Context, dataDir string) error {
	log := zerolog.Nop()
	local := store.NewLocal(dataDir)
	dual := func(name string) *store.Dual {
		return store.NewDual(name, nil, local.Collection(name), log)
	}

	doctors := doctor.NewStoreRepo(dual(doctor.CollectionName))
	drChen, err := doctors.Create(ctx, &doctor.Doctor{Name: "Dr. Alice Chen", Specialty: "Endocrinology"})
	if err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}

	patients := patient.NewStoreRepo(dual(patient.CollectionName))
	seedPatients := []patient.Patient{
		{Name: "Maria Santos", Email: "maria@example.com", Age: 54, Type: patient.Type2, DoctorID: drChen.ID},
		{Name: "James Okafor", Email: "james@example.com", Age: 31, Type: patient.Type1, DoctorID: drChen.ID},
		{Name: "Lin Wei", Email: "lin@example.com", Age: 42, Type: patient.PreDiabetes, DoctorID: drChen.ID},
	}
	created := make([]*patient.Patient, 0, len(seedPatients))
	for i := range seedPatients {
		p, err := patients.Create(ctx, &seedPatients[i])
		if err != nil {
			return fmt.Errorf("seed patients: %w", err)
		}
		created = append(created, p)
	}

	vitalsRepo := vitals.NewStoreRepo(nil, local.Collection(vitals.LocalCollectionName), log)
	for i, p := range created {
		readings := []vitals.Reading{
			{Date: "2025-07-01", Type: "glucose", Value: vitals.Value(fmt.Sprintf("%d", 110+i*10)), Unit: "mg/dL"},
			{Date: "2025-07-15", Type: "glucose", Value: vitals.Value(fmt.Sprintf("%d", 120+i*10)), Unit: "mg/dL"},
			{Date: "2025-07-20", Type: "blood pressure", Value: "120/80", Unit: "mmHg"},
		}
		for j := range readings {
			if _, err := vitalsRepo.Add(ctx, p.ID.String(), &readings[j]); err != nil {
				return fmt.Errorf("seed vitals: %w", err)
			}
		}
	}

	prescriptions := prescription.NewStoreRepo(dual(prescription.CollectionName))
	for _, p := range created {
		rx := &prescription.Prescription{
			PatientID:  p.ID,
			DoctorName: drChen.Name,
			Medication: "Metformin",
			Dosage:     "500mg",
			Frequency:  "twice daily",
			StartDate:  "2025-06-01",
		}
		if _, err := prescriptions.Create(ctx, rx); err != nil {
			return fmt.Errorf("seed prescriptions: %w", err)
		}
	}

	appointments := appointment.NewStoreRepo(dual(appointment.CollectionName))
	for i, p := range created {
		appt := &appointment.Appointment{
			PatientID: p.ID,
			DoctorID:  drChen.ID,
			Date:      fmt.Sprintf("2025-09-%02d", 10+i),
			Type:      "checkup",
		}
		if _, err := appointments.Create(ctx, appt); err != nil {
			return fmt.Errorf("seed appointments: %w", err)
		}
	}

	fmt.Printf("Seeded %d patients into %s\n", len(created), dataDir)
	return nil
}
