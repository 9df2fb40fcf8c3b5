package population

import (
	"context"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/diacare/diacare/internal/domain/appointment"
	"github.com/diacare/diacare/internal/domain/patient"
	"github.com/diacare/diacare/internal/domain/prescription"
	"github.com/diacare/diacare/internal/domain/vitals"
	"github.com/diacare/diacare/internal/platform/schema"
)

// The aggregator reads through the same services the HTTP surface uses, but
// only the slices of them it needs.
type PatientSource interface {
	List(ctx context.Context) ([]patient.Patient, error)
}

type VitalsSource interface {
	ByPatient(ctx context.Context, patientID string) (*vitals.PatientVitals, error)
}

type PrescriptionSource interface {
	List(ctx context.Context) ([]prescription.Prescription, error)
}

type AppointmentSource interface {
	List(ctx context.Context) ([]appointment.Appointment, error)
}

// Service computes anonymized population statistics. It is read-only and
// stateless; every call takes a fresh snapshot.
type Service struct {
	patients      PatientSource
	vitals        VitalsSource
	prescriptions PrescriptionSource
	appointments  AppointmentSource
}

func NewService(patients PatientSource, v VitalsSource, rx PrescriptionSource, appts AppointmentSource) *Service {
	return &Service{patients: patients, vitals: v, prescriptions: rx, appointments: appts}
}

var ageBands = []string{"0-18", "19-35", "36-55", "56+"}

func ageBand(age int) string {
	switch {
	case age <= 18:
		return ageBands[0]
	case age <= 35:
		return ageBands[1]
	case age <= 55:
		return ageBands[2]
	default:
		return ageBands[3]
	}
}

func isGlucose(readingType string) bool {
	return strings.Contains(strings.ToLower(readingType), "glucose")
}

// Stats builds all five views from one snapshot. Per-patient vitals are
// fetched concurrently and joined before any aggregation starts.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}

	perPatient := make([]*vitals.PatientVitals, len(patients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range patients {
		i, id := i, patients[i].ID.String()
		g.Go(func() error {
			pv, err := s.vitals.ByPatient(gctx, id)
			if err != nil {
				return err
			}
			perPatient[i] = pv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prescriptions, err := s.prescriptions.List(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		GeneratedAt:       schema.Now(),
		TotalPatients:     len(patients),
		DiabetesTypes:     diabetesDistribution(patients),
		GlucoseByAgeBand:  glucoseByAgeBand(patients, perPatient),
		GlucoseTrend:      glucoseTrend(perPatient),
		TopMedications:    topMedications(prescriptions),
		AppointmentVolume: appointmentVolume(appointments),
	}, nil
}

// diabetesDistribution counts patients per diabetes type and folds every
// sub-threshold type into the "Other" bucket.
func diabetesDistribution(patients []patient.Patient) []CategoryCount {
	counts := map[string]int{}
	for _, p := range patients {
		label := string(p.Type)
		if label == "" {
			label = string(patient.TypeOther)
		}
		counts[label]++
	}
	other := counts[string(patient.TypeOther)]
	delete(counts, string(patient.TypeOther))
	for label, n := range counts {
		if n < AnonymityThreshold {
			other += n
			delete(counts, label)
		}
	}
	if other > 0 {
		counts[string(patient.TypeOther)] = other
	}
	return sortedCounts(counts, 0)
}

// glucoseByAgeBand averages each patient's glucose readings first, then
// averages those per-patient values within fixed age bands, so frequent
// readers do not dominate their band. Bands below the threshold are dropped.
func glucoseByAgeBand(patients []patient.Patient, perPatient []*vitals.PatientVitals) []BandAverage {
	bands := map[string][]float64{}
	for i, p := range patients {
		pv := perPatient[i]
		if pv == nil {
			continue
		}
		var sum float64
		var n int
		for _, r := range pv.Readings {
			if !isGlucose(r.Type) {
				continue
			}
			v, ok := r.Value.Float()
			if !ok {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			continue
		}
		band := ageBand(p.Age)
		bands[band] = append(bands[band], sum/float64(n))
	}

	out := make([]BandAverage, 0, len(ageBands))
	for _, band := range ageBands {
		subjects := bands[band]
		if len(subjects) < AnonymityThreshold {
			continue
		}
		var sum float64
		for _, v := range subjects {
			sum += v
		}
		out = append(out, BandAverage{
			Band:     band,
			Patients: len(subjects),
			Average:  math.Round(sum / float64(len(subjects))),
		})
	}
	return out
}

// glucoseTrend buckets every glucose reading by calendar month; months with
// fewer readings than the threshold are dropped rather than estimated.
func glucoseTrend(perPatient []*vitals.PatientVitals) []TrendPoint {
	months := map[string][]float64{}
	for _, pv := range perPatient {
		if pv == nil {
			continue
		}
		for _, r := range pv.Readings {
			if !isGlucose(r.Type) {
				continue
			}
			v, ok := r.Value.Float()
			if !ok {
				continue
			}
			ts, err := schema.ParseTime(r.Date)
			if err != nil {
				continue
			}
			months[ts.Month()] = append(months[ts.Month()], v)
		}
	}

	out := make([]TrendPoint, 0, len(months))
	for month, values := range months {
		if len(values) < AnonymityThreshold {
			continue
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		out = append(out, TrendPoint{Month: month, Average: math.Round(sum / float64(len(values)))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// topMedications ranks medications by prescription count. Sub-threshold
// medications are excluded before ranking so the truncation never exposes a
// small group.
func topMedications(prescriptions []prescription.Prescription) []CategoryCount {
	counts := map[string]int{}
	for _, p := range prescriptions {
		if p.Medication == "" {
			continue
		}
		counts[p.Medication]++
	}
	for label, n := range counts {
		if n < AnonymityThreshold {
			delete(counts, label)
		}
	}
	return sortedCounts(counts, TopMedicationCount)
}

// appointmentVolume is a plain per-month count; a date bucket alone carries
// no identity-linked attribute, so no suppression applies.
func appointmentVolume(appointments []appointment.Appointment) []VolumePoint {
	months := map[string]int{}
	for _, a := range appointments {
		ts, err := schema.ParseTime(a.Date)
		if err != nil {
			continue
		}
		months[ts.Month()]++
	}
	out := make([]VolumePoint, 0, len(months))
	for month, n := range months {
		out = append(out, VolumePoint{Month: month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func sortedCounts(counts map[string]int, limit int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, CategoryCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
