package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"clinical-study/internal/domain/entity"
	"clinical-study/internal/repository"
	"clinical-study/internal/testutil"
)

func TestPatientLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	patients := NewPatientUsecase(db, testutil.Logger(), repository.NewPatientRepository(), repository.NewQuestionnaireRepository())

	created, err := patients.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.BaselineCompleted || created.ExposureCompleted || created.FollowUpCompleted {
		t.Fatalf("unexpected patient %+v", created)
	}
	if _, err := patients.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := patients.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[1].ID != created.ID {
		t.Errorf("expected newest first, got %+v", list)
	}

	detail, err := patients.Detail(ctx, created.ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.Baseline != nil || detail.Exposure != nil || len(detail.FollowUps) != 0 {
		t.Errorf("expected empty sections, got %+v", detail)
	}

	if _, err := patients.Detail(ctx, 999); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}

	stats, err := patients.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.PatientsTotal != 2 || stats.FollowUpsTotal != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestPatientDetailIsDeterministic(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	patients := NewPatientUsecase(db, testutil.Logger(), repository.NewPatientRepository(), repository.NewQuestionnaireRepository())
	patientID := testutil.CreatePatient(t, db)

	no := entity.AnswerNo
	for _, d := range []entity.Date{entity.NewDate(2024, time.January, 1), entity.NewDate(2024, time.February, 1)} {
		record := &entity.FollowUpRecord{CollectionDate: d, Infarction: &no, Deceased: &no}
		record.Attribute(patientID, testutil.OperatorID)
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seed follow-up: %v", err)
		}
	}

	first, err := patients.Detail(ctx, patientID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	second, err := patients.Detail(ctx, patientID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("repeated reads differ:\n%s\n%s", a, b)
	}
	if first.FollowUps[0].CollectionDate.String() != "2024-02-01" {
		t.Errorf("expected newest follow-up first, got %s", first.FollowUps[0].CollectionDate)
	}
}

func TestPatientDetailIgnoresOrphanedRows(t *testing.T) {
	db := testutil.NewDB(t)
	patients := NewPatientUsecase(db, testutil.Logger(), repository.NewPatientRepository(), repository.NewQuestionnaireRepository())

	orphan := &entity.BaselineRecord{AdmissionDate: entity.NewDate(2024, time.January, 1)}
	orphan.Attribute(77, testutil.OperatorID)
	if err := db.Create(orphan).Error; err != nil {
		t.Fatalf("seed orphan: %v", err)
	}

	if _, err := patients.Detail(context.Background(), 77); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
