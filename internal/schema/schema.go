// Package schema строит каноническую раскладку колонок отчета: базовые
// колонки, за которыми идут пронумерованные группы полей субподрядчиков.
package schema

import (
	"fmt"

	"github.com/ryabkov82/scimerge/internal/errors"
)

// MaxGroups - верхняя граница числа групп субподрядчиков.
const MaxGroups = 100

// GroupSize - количество полей в одной группе.
const GroupSize = 5

// Field - поле внутри группы субподрядчика.
type Field int

const (
	FieldNone Field = iota
	FieldContractNumber
	FieldUEI
	FieldName
	FieldHoursInvoiced
	FieldFTE
)

var groupFields = [GroupSize]Field{
	FieldContractNumber,
	FieldUEI,
	FieldName,
	FieldHoursInvoiced,
	FieldFTE,
}

func (f Field) suffix() string {
	switch f {
	case FieldContractNumber:
		return "contract_number"
	case FieldUEI:
		return "uei"
	case FieldName:
		return "name"
	case FieldHoursInvoiced:
		return "hours_invoiced"
	case FieldFTE:
		return "fte"
	}
	return ""
}

// BaseColumns - фиксированные колонки шаблона отчета. Ширина базового
// блока берется из этого списка (36 колонок), а не задается числом.
var BaseColumns = []string{
	"psc_code",
	"psc_description",
	"contracting_dept_code",
	"contracting_dept_name",
	"contracting_agency_code",
	"contracting_agency_name",
	"funding_dept_code",
	"funding_dept_name",
	"funding_agency_code",
	"funding_agency_name",
	"pop_city",
	"pop_state",
	"pop_county",
	"pop_zip",
	"pop_country",
	"date_signed",
	"base_effective_date",
	"accepted_timestamp",
	"extent_competed",
	"fair_opportunity_limited_sources",
	"contract_type",
	"requirement_description",
	"additional_reporting",
	"inherently_gov_functions",
	"vendor_uei",
	"vendor_name",
	"vendor_cage_code",
	"referenced_idv_piid",
	"piid",
	"total_dollars_obligated",
	"total_base_all_options_value",
	"total_invoiced_amount",
	"total_hours_invoiced",
	"total_fte",
	"prime_hours_invoiced",
	"prime_fte",
}

// BaseWidth - ширина базового блока.
var BaseWidth = len(BaseColumns)

// Column описывает одну колонку схемы. Group == 0 у базовых колонок.
type Column struct {
	Name  string
	Group int
	Field Field
}

// Schema - упорядоченный список колонок.
type Schema []Column

// Names возвращает имена колонок в порядке схемы.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

func (s Schema) Width() int { return len(s) }

// Groups возвращает число групп субподрядчиков в схеме.
func (s Schema) Groups() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Group
}

// Width - ширина схемы с заданным числом групп.
func Width(groups int) int {
	return BaseWidth + GroupSize*groups
}

// Build строит каноническую схему. Ограничение сверху - забота вызывающего.
func Build(groups int) (Schema, error) {
	if groups < 0 {
		return nil, errors.InvalidArgument("group count must not be negative, got %d", groups)
	}

	s := make(Schema, 0, Width(groups))
	for _, name := range BaseColumns {
		s = append(s, Column{Name: name})
	}
	for i := 1; i <= groups; i++ {
		for _, f := range groupFields {
			s = append(s, Column{
				Name:  fmt.Sprintf("sub%d_%s", i, f.suffix()),
				Group: i,
				Field: f,
			})
		}
	}
	return s, nil
}

// Headers - то же, что Build, но только имена.
func Headers(groups int) ([]string, error) {
	s, err := Build(groups)
	if err != nil {
		return nil, err
	}
	return s.Names(), nil
}
