package dto

import "github.com/jhoicas/almacen-api/internal/domain/query"

// StageFiltersRequest body para PUT /api/views/:view/filters.
// Las fechas van como "2006-01-02"; vacío = sin límite.
type StageFiltersRequest struct {
	Subwarehouse string `json:"subwarehouse"`
	From         string `json:"from"`
	To           string `json:"to"`
}

// FiltersResponse filtros en edición y aplicados de una vista.
type FiltersResponse struct {
	View    string            `json:"view"`
	Staged  query.RangeFilter `json:"staged"`
	Applied query.RangeFilter `json:"applied"`
}
