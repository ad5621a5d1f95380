package setup

import (
	"fmt"

	"gorm.io/gorm/schema"
)

// constraintNamer names indexes and constraints ix_/uq_/ck_/fk_ followed by
// the table and column names, so that the schema can later be taken over by a
// migration tool.
//
// Primary keys are not covered: schema.Namer has no hook for them, so they
// keep the name the driver assigns (for example questions_pkey on Postgres)
// rather than pk_<table>.
type constraintNamer struct {
	schema.NamingStrategy
}

// NamingConvention returns the naming strategy used for every connection.
func NamingConvention() schema.Namer {
	return constraintNamer{}
}

func (n constraintNamer) IndexName(table, column string) string {
	return fmt.Sprintf("ix_%s_%s", table, n.ColumnName(table, column))
}

func (n constraintNamer) UniqueName(table, column string) string {
	return fmt.Sprintf("uq_%s_%s", table, n.ColumnName(table, column))
}

func (n constraintNamer) CheckerName(table, column string) string {
	return fmt.Sprintf("ck_%s_%s", table, n.ColumnName(table, column))
}

// RelationshipFKName names a foreign key fk_<table>_<column>_<referred table>,
// where table is the one holding the column.
func (n constraintNamer) RelationshipFKName(rel schema.Relationship) string {
	table, referred := rel.Schema.Table, rel.FieldSchema.Table
	if rel.Type == schema.HasOne || rel.Type == schema.HasMany {
		table, referred = referred, table
	}
	column := ""
	for _, ref := range rel.References {
		if ref.ForeignKey != nil {
			column = ref.ForeignKey.DBName
			break
		}
	}
	return fmt.Sprintf("fk_%s_%s_%s", table, column, referred)
}
