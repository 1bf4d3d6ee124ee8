package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"clinical-study/internal/domain/entity"
	domainRepo "clinical-study/internal/domain/repository"
	"clinical-study/internal/infrastructure/metrics"
	"clinical-study/internal/repository"
	"clinical-study/internal/testutil"
	"clinical-study/pkg/form"
	"clinical-study/pkg/validator"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

func newQuestionnaireUsecase(t *testing.T) (QuestionnaireUsecase, *gorm.DB, *metrics.Metrics) {
	t.Helper()
	db := testutil.NewDB(t)
	m := metrics.New()
	uc := NewQuestionnaireUsecase(
		db,
		testutil.Logger(),
		validator.NewValidator(),
		m,
		repository.NewPatientRepository(),
		repository.NewEmployeeRepository(),
		repository.NewQuestionnaireRepository(),
	)
	return uc, db, m
}

func input(t *testing.T, body string) form.Input {
	t.Helper()
	var in form.Input
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return in
}

func loadPatient(t *testing.T, db *gorm.DB, id int64) entity.Patient {
	t.Helper()
	var p entity.Patient
	if err := db.Where(map[string]interface{}{"idPatient": id}).First(&p).Error; err != nil {
		t.Fatalf("load patient: %v", err)
	}
	return p
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestSubmitBaseline(t *testing.T) {
	uc, db, m := newQuestionnaireUsecase(t)
	patientID := testutil.CreatePatient(t, db)

	in := form.Input{
		"patientId":      form.Text(jsonInt(patientID)),
		"aufnahmedatum":  form.Text(" 2024-03-01 "),
		"studienzentrum": form.Text("  "),
		"geburtsdatum":   form.Text("1960-07-15"),
		"groesse":        form.Text("180.6"),
		"gewicht":        form.Text("schwer"),
	}
	result, err := uc.Submit(context.Background(), entity.QuestionnaireBaseline, testutil.OperatorID, in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.IDKey != "stammdatenId" || result.RecordID == 0 || result.PatientID != patientID {
		t.Errorf("unexpected result %+v", result)
	}

	var stored entity.BaselineRecord
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load baseline: %v", err)
	}
	if stored.AdmissionDate.String() != "2024-03-01" || stored.StudyCenter != nil || stored.BirthDate == nil {
		t.Errorf("unexpected stored row %+v", stored)
	}
	if stored.Height == nil || *stored.Height != 181 || stored.Weight != nil {
		t.Errorf("unexpected measurements %v %v", stored.Height, stored.Weight)
	}
	if stored.EmployeeID != testutil.OperatorID {
		t.Errorf("expected operator %d, got %d", testutil.OperatorID, stored.EmployeeID)
	}

	p := loadPatient(t, db, patientID)
	if !p.BaselineCompleted || p.ExposureCompleted || p.FollowUpCompleted {
		t.Errorf("unexpected flags %+v", p)
	}
	if got := promtestutil.ToFloat64(m.Submissions("stammdaten", metrics.OutcomeOK)); got != 1 {
		t.Errorf("expected one ok submission, got %v", got)
	}
}

func TestSubmitRejectsBeforeStorage(t *testing.T) {
	tests := []struct {
		name  string
		kind  entity.QuestionnaireKind
		body  string
		field string
	}{
		{"missing patient id", entity.QuestionnaireBaseline, `{"aufnahmedatum":"2024-01-01"}`, "patientId"},
		{"zero patient id", entity.QuestionnaireBaseline, `{"patientId":0,"aufnahmedatum":"2024-01-01"}`, "patientId"},
		{"fractional patient id", entity.QuestionnaireExposure, `{"patientId":"1.5","datumErhebung":"2024-01-01"}`, "patientId"},
		{"blank date", entity.QuestionnaireBaseline, `{"patientId":1,"aufnahmedatum":"   "}`, "aufnahmedatum"},
		{"invalid date", entity.QuestionnaireExposure, `{"patientId":1,"datumErhebung":"01.02.2024"}`, "datumErhebung"},
		{"invalid optional date", entity.QuestionnaireBaseline, `{"patientId":1,"aufnahmedatum":"2024-01-01","geburtsdatum":"2024-02-30"}`, "geburtsdatum"},
		{"unknown answer", entity.QuestionnaireExposure, `{"patientId":1,"datumErhebung":"2024-01-01","geraucht":"manchmal"}`, "geraucht"},
		{"unknown set member", entity.QuestionnaireExposure, `{"patientId":1,"datumErhebung":"2024-01-01","sorteRauchen":"Pfeife,Zigarre"}`, "sorteRauchen"},
		{"infarction without date", entity.QuestionnaireFollowUp, `{"patientId":1,"datumErhebung":"2024-01-01","infarkt":"ja","datumInfarkt":" "}`, "datumInfarkt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, db, m := newQuestionnaireUsecase(t)
			testutil.CreatePatient(t, db)

			_, err := uc.Submit(context.Background(), tt.kind, testutil.OperatorID, input(t, tt.body))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Fields[tt.field] == "" {
				t.Errorf("expected message for %s, got %+v", tt.field, verr.Fields)
			}
			if verr.Message == "" {
				t.Error("expected a message")
			}

			p := loadPatient(t, db, 1)
			if p.BaselineCompleted || p.ExposureCompleted || p.FollowUpCompleted {
				t.Errorf("no flag may change, got %+v", p)
			}
			if got := promtestutil.ToFloat64(m.Submissions(tt.kind.String(), metrics.OutcomeInvalid)); got != 1 {
				t.Errorf("expected one invalid submission, got %v", got)
			}
		})
	}
}

func TestSubmitUnknownPatient(t *testing.T) {
	uc, db, _ := newQuestionnaireUsecase(t)

	_, err := uc.Submit(context.Background(), entity.QuestionnaireFollowUp, testutil.OperatorID,
		input(t, `{"patientId":42,"datumErhebung":"2024-01-01"}`))
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if n := countRows(t, db, &entity.FollowUpRecord{}); n != 0 {
		t.Errorf("expected no follow-up rows, got %d", n)
	}
}

func TestSubmitMissingOperator(t *testing.T) {
	uc, db, m := newQuestionnaireUsecase(t)
	patientID := testutil.CreatePatient(t, db)

	_, err := uc.Submit(context.Background(), entity.QuestionnaireBaseline, 99,
		form.Input{"patientId": form.Text(jsonInt(patientID)), "aufnahmedatum": form.Text("2024-01-01")})
	if !errors.Is(err, ErrOperatorMissing) {
		t.Fatalf("expected ErrOperatorMissing, got %v", err)
	}
	if n := countRows(t, db, &entity.BaselineRecord{}); n != 0 {
		t.Errorf("expected no baseline rows, got %d", n)
	}
	if got := promtestutil.ToFloat64(m.Submissions("stammdaten", metrics.OutcomeError)); got != 1 {
		t.Errorf("expected one failed submission, got %v", got)
	}
}

// failingFlagRepository fails the completion flag update after the detail
// row has been inserted.
type failingFlagRepository struct {
	domainRepo.PatientRepository
	err error
}

func (r *failingFlagRepository) MarkCompleted(context.Context, *gorm.DB, int64, string) error {
	return r.err
}

func TestSubmitRollsBackWhenFlagUpdateFails(t *testing.T) {
	db := testutil.NewDB(t)
	m := metrics.New()
	flagErr := errors.New("flag update failed")
	uc := NewQuestionnaireUsecase(
		db,
		testutil.Logger(),
		validator.NewValidator(),
		m,
		&failingFlagRepository{PatientRepository: repository.NewPatientRepository(), err: flagErr},
		repository.NewEmployeeRepository(),
		repository.NewQuestionnaireRepository(),
	)
	patientID := testutil.CreatePatient(t, db)

	_, err := uc.Submit(context.Background(), entity.QuestionnaireBaseline, testutil.OperatorID,
		form.Input{"patientId": form.Text(jsonInt(patientID)), "aufnahmedatum": form.Text("2024-01-01")})
	if !errors.Is(err, flagErr) {
		t.Fatalf("expected flag error, got %v", err)
	}
	if n := countRows(t, db, &entity.BaselineRecord{}); n != 0 {
		t.Errorf("expected inserted baseline to be rolled back, got %d rows", n)
	}
	if p := loadPatient(t, db, patientID); p.BaselineCompleted {
		t.Error("flag must stay unset")
	}
	if got := promtestutil.ToFloat64(m.Submissions("stammdaten", metrics.OutcomeError)); got != 1 {
		t.Errorf("expected one failed submission, got %v", got)
	}
}

func TestSubmitOncePerPatient(t *testing.T) {
	for _, kind := range []entity.QuestionnaireKind{entity.QuestionnaireBaseline, entity.QuestionnaireExposure} {
		t.Run(kind.String(), func(t *testing.T) {
			uc, db, _ := newQuestionnaireUsecase(t)
			patientID := testutil.CreatePatient(t, db)
			in := form.Input{
				"patientId":     form.Text(jsonInt(patientID)),
				"aufnahmedatum": form.Text("2024-01-01"),
				"datumErhebung": form.Text("2024-01-01"),
			}

			if _, err := uc.Submit(context.Background(), kind, testutil.OperatorID, in); err != nil {
				t.Fatalf("first Submit: %v", err)
			}
			_, err := uc.Submit(context.Background(), kind, testutil.OperatorID, in)
			if !errors.Is(err, ErrAlreadySubmitted) {
				t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
			}
		})
	}
}

func TestSubmitConcurrentBaseline(t *testing.T) {
	uc, db, _ := newQuestionnaireUsecase(t)
	patientID := testutil.CreatePatient(t, db)
	in := form.Input{"patientId": form.Text(jsonInt(patientID)), "aufnahmedatum": form.Text("2024-01-01")}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Submit(context.Background(), entity.QuestionnaireBaseline, testutil.OperatorID, in)
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadySubmitted):
			conflict++
		default:
			t.Errorf("unexpected error %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Errorf("expected one success and one conflict, got %d and %d", ok, conflict)
	}
	if n := countRows(t, db, &entity.BaselineRecord{}); n != 1 {
		t.Errorf("expected exactly one baseline row, got %d", n)
	}
}

func TestSubmitFollowUps(t *testing.T) {
	uc, db, _ := newQuestionnaireUsecase(t)
	patientID := testutil.CreatePatient(t, db)
	id := jsonInt(patientID)

	first, err := uc.Submit(context.Background(), entity.QuestionnaireFollowUp, testutil.OperatorID,
		input(t, `{"patientId":`+id+`,"datumErhebung":"2024-01-01","infarkt":"nein","verstorben":"nein"}`))
	if err != nil {
		t.Fatalf("first follow-up: %v", err)
	}
	second, err := uc.Submit(context.Background(), entity.QuestionnaireFollowUp, testutil.OperatorID,
		input(t, `{"patientId":"`+id+`","datumErhebung":"2024-06-01","infarkt":"ja","datumInfarkt":"2024-05-20"}`))
	if err != nil {
		t.Fatalf("second follow-up: %v", err)
	}
	if second.RecordID <= first.RecordID || second.IDKey != "followUpId" {
		t.Errorf("unexpected results %+v %+v", first, second)
	}

	if n := countRows(t, db, &entity.FollowUpRecord{}); n != 2 {
		t.Errorf("expected 2 follow-ups, got %d", n)
	}
	if p := loadPatient(t, db, patientID); !p.FollowUpCompleted {
		t.Error("follow-up flag should be set")
	}
}

func TestSubmitExposureNormalization(t *testing.T) {
	uc, db, _ := newQuestionnaireUsecase(t)
	patientID := testutil.CreatePatient(t, db)

	_, err := uc.Submit(context.Background(), entity.QuestionnaireExposure, testutil.OperatorID, input(t, `{
		"patientId": `+jsonInt(patientID)+`,
		"datumErhebung": "2024-02-02",
		"geraucht": "ehemalig",
		"sorteRauchen": ["Pfeife", "Zigaretten"],
		"alterBeginn": "17",
		"rauchenEnde": "12.5",
		"anzahlZigTag": "zehn",
		"oftAlkohol": "täglich",
		"grammAlkohol": 20,
		"gesundBedenken": "unter bestimmten Voraussetzungen"
	}`))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var stored entity.ExposureRecord
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load exposure: %v", err)
	}
	if stored.SmokingKind == nil || *stored.SmokingKind != "Pfeife,Zigaretten" {
		t.Errorf("unexpected sorteRauchen %v", stored.SmokingKind)
	}
	if stored.SmokingStartAge == nil || *stored.SmokingStartAge != 17 {
		t.Errorf("unexpected alterBeginn %v", stored.SmokingStartAge)
	}
	if stored.SmokingStopYears != nil || stored.CigarettesPerDay != nil {
		t.Error("non-integral values must be stored as null")
	}
	if stored.AlcoholGramsDaily == nil || *stored.AlcoholGramsDaily != 20 {
		t.Errorf("unexpected grammAlkohol %v", stored.AlcoholGramsDaily)
	}
}

func TestSubmitUnknownKind(t *testing.T) {
	uc, _, _ := newQuestionnaireUsecase(t)
	_, err := uc.Submit(context.Background(), entity.QuestionnaireKind("q4"), testutil.OperatorID, form.Input{})
	if !errors.Is(err, ErrUnknownQuestionnaire) {
		t.Fatalf("expected ErrUnknownQuestionnaire, got %v", err)
	}
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
