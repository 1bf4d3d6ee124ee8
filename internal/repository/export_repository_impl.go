package repository

import (
	"context"
	"fmt"
	"strings"

	"clinical-study/internal/domain/entity"
	domainRepo "clinical-study/internal/domain/repository"

	"gorm.io/gorm"
)

type exportRepository struct{}

func NewExportRepository() domainRepo.ExportRepository {
	return &exportRepository{}
}

// exportColumn is one projected column of the study table.
type exportColumn struct {
	source string
	alias  string
}

var exportColumns = []exportColumn{
	{"s.Patient_idPatient", "idPatient"},
	{"s.aufnahmedatum", "aufnahmedatum"},
	{"s.studienzentrum", "studienzentrum"},
	{"s.geburtsdatum", "geburtsdatum"},
	{"s.groesse", "groesse"},
	{"s.gewicht", "gewicht"},
	{"e.datumErhebung", "datumErhebungExposition"},
	{"e.geraucht", "geraucht"},
	{"e.sorteRauchen", "sorteRauchen"},
	{"e.alterBeginn", "alterBeginn"},
	{"e.rauchenEnde", "rauchenEnde"},
	{"e.anzahlZigTag", "anzahlZigTag"},
	{"e.oftAlkohol", "oftAlkohol"},
	{"e.grammAlkohol", "grammAlkohol"},
	{"e.gesundBedenken", "gesundBedenken"},
	{"f.datumErhebung", "datumErhebungFollowUp"},
	{"f.infarkt", "infarkt"},
	{"f.verstorben", "verstorben"},
	{"f.datumInfarkt", "datumInfarkt"},
}

// studyTableSQL renders the export query with identifiers quoted for the
// dialect of db.
func studyTableSQL(db *gorm.DB) string {
	projection := make([]string, 0, len(exportColumns))
	for _, c := range exportColumns {
		projection = append(projection, quote(db, c.source)+" AS "+quote(db, c.alias))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(projection, ", "))
	fmt.Fprintf(&b, " FROM %s s", quote(db, entity.BaselineRecord{}.TableName()))
	fmt.Fprintf(&b, " LEFT JOIN %s e ON %s = %s", quote(db, entity.ExposureRecord{}.TableName()),
		quote(db, "e.Patient_idPatient"), quote(db, "s.Patient_idPatient"))
	fmt.Fprintf(&b, " LEFT JOIN %s f ON %s = %s", quote(db, entity.FollowUpRecord{}.TableName()),
		quote(db, "f.Patient_idPatient"), quote(db, "s.Patient_idPatient"))
	fmt.Fprintf(&b, " ORDER BY %s ASC, %s ASC, %s ASC",
		quote(db, "s.Patient_idPatient"), quote(db, "f.datumErhebung"), quote(db, "f.idFollowUp"))
	return b.String()
}

func (r *exportRepository) StudyTable(ctx context.Context, db *gorm.DB) (*entity.ExportTable, error) {
	rows, err := db.WithContext(ctx).Raw(studyTableSQL(db)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &entity.ExportTable{Columns: columns, Rows: [][]interface{}{}}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		// drivers may reuse byte buffers between rows
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
