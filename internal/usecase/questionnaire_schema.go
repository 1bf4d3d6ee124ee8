package usecase

import (
	"clinical-study/internal/domain/entity"
	"clinical-study/pkg/form"
)

const (
	dateRule          = "datetime=" + entity.DateLayout
	patientIDField    = "patientId"
	fieldDatumInfarkt = "datumInfarkt"
)

// questionnaireSchema declares how one questionnaire kind is validated and
// stored.
type questionnaireSchema struct {
	kind       entity.QuestionnaireKind
	fields     []form.Field
	dateField  string
	flagColumn string
	idKey      string
	// onePerPatient turns a unique violation on insert into ErrAlreadySubmitted.
	onePerPatient bool
	check         func(vs form.Values) *ValidationError
	build         func(vs form.Values) entity.QuestionnaireRecord
}

var baselineSchema = questionnaireSchema{
	kind: entity.QuestionnaireBaseline,
	fields: []form.Field{
		{Name: "aufnahmedatum", Kind: form.KindDate},
		{Name: "studienzentrum", Kind: form.KindText, Rule: "max=45"},
		{Name: "geburtsdatum", Kind: form.KindDate},
		{Name: "groesse", Kind: form.KindNumber},
		{Name: "gewicht", Kind: form.KindNumber},
	},
	dateField:     "aufnahmedatum",
	flagColumn:    entity.ColumnBaselineCompleted,
	idKey:         "stammdatenId",
	onePerPatient: true,
	build: func(vs form.Values) entity.QuestionnaireRecord {
		return &entity.BaselineRecord{
			AdmissionDate: mustDate(vs.Text("aufnahmedatum")),
			StudyCenter:   vs.Text("studienzentrum"),
			BirthDate:     optionalDate(vs.Text("geburtsdatum")),
			Height:        vs.Int("groesse"),
			Weight:        vs.Int("gewicht"),
		}
	},
}

var exposureSchema = questionnaireSchema{
	kind: entity.QuestionnaireExposure,
	fields: []form.Field{
		{Name: "datumErhebung", Kind: form.KindDate},
		{Name: "geraucht", Kind: form.KindText, Rule: "oneof=nie ehemalig"},
		{Name: "sorteRauchen", Kind: form.KindText, Rule: "setof=Pfeife Zigaretten"},
		{Name: "alterBeginn", Kind: form.KindInt},
		{Name: "rauchenEnde", Kind: form.KindInt},
		{Name: "anzahlZigTag", Kind: form.KindInt},
		{Name: "oftAlkohol", Kind: form.KindText, Rule: "oneof=nie gelegentlich täglich"},
		{Name: "grammAlkohol", Kind: form.KindInt},
		{Name: "gesundBedenken", Kind: form.KindText, Rule: "oneof=keine 'unter bestimmten Voraussetzungen' ja"},
	},
	dateField:     "datumErhebung",
	flagColumn:    entity.ColumnExposureCompleted,
	idKey:         "expositionId",
	onePerPatient: true,
	build: func(vs form.Values) entity.QuestionnaireRecord {
		return &entity.ExposureRecord{
			CollectionDate:    mustDate(vs.Text("datumErhebung")),
			Smoked:            vs.Text("geraucht"),
			SmokingKind:       vs.Text("sorteRauchen"),
			SmokingStartAge:   vs.Int("alterBeginn"),
			SmokingStopYears:  vs.Int("rauchenEnde"),
			CigarettesPerDay:  vs.Int("anzahlZigTag"),
			AlcoholFrequency:  vs.Text("oftAlkohol"),
			AlcoholGramsDaily: vs.Int("grammAlkohol"),
			HealthConcerns:    vs.Text("gesundBedenken"),
		}
	},
}

var followUpSchema = questionnaireSchema{
	kind: entity.QuestionnaireFollowUp,
	fields: []form.Field{
		{Name: "datumErhebung", Kind: form.KindDate},
		{Name: "infarkt", Kind: form.KindText, Rule: "oneof=ja nein"},
		{Name: "verstorben", Kind: form.KindText, Rule: "oneof=ja nein"},
		{Name: fieldDatumInfarkt, Kind: form.KindDate},
	},
	dateField:  "datumErhebung",
	flagColumn: entity.ColumnFollowUpCompleted,
	idKey:      "followUpId",
	check: func(vs form.Values) *ValidationError {
		visit := entity.FollowUpRecord{Infarction: vs.Text("infarkt")}
		if visit.HadInfarction() && !vs.Present(fieldDatumInfarkt) {
			return newValidationError(fieldDatumInfarkt, "datumInfarkt is required when infarkt = ja")
		}
		return nil
	},
	build: func(vs form.Values) entity.QuestionnaireRecord {
		return &entity.FollowUpRecord{
			CollectionDate: mustDate(vs.Text("datumErhebung")),
			Infarction:     vs.Text("infarkt"),
			Deceased:       vs.Text("verstorben"),
			InfarctionDate: optionalDate(vs.Text(fieldDatumInfarkt)),
		}
	},
}

var schemas = map[entity.QuestionnaireKind]*questionnaireSchema{
	entity.QuestionnaireBaseline: &baselineSchema,
	entity.QuestionnaireExposure: &exposureSchema,
	entity.QuestionnaireFollowUp: &followUpSchema,
}

// mustDate converts a date already validated against dateRule.
func mustDate(s *string) entity.Date {
	d, err := entity.ParseDate(*s)
	if err != nil {
		panic("unvalidated date " + *s)
	}
	return d
}

func optionalDate(s *string) *entity.Date {
	if s == nil {
		return nil
	}
	d := mustDate(s)
	return &d
}
