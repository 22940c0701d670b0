package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/query"
)

// dateLayout formato de las fechas de los filtros (input type=date).
const dateLayout = "2006-01-02"

// idParam copia el parámetro de ruta: fasthttp reutiliza el buffer de la petición
// y el valor se guarda en mapas y repositorios después de responder.
func idParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

// searchTerms lee ?q= repetible.
func searchTerms(c *fiber.Ctx) []string {
	var terms []string
	for _, v := range c.Context().QueryArgs().PeekMulti("q") {
		terms = append(terms, string(v))
	}
	return terms
}

// stockFilter lee ?q=&subwarehouse=&bucket= (bucket repetible, 0..5).
func stockFilter(c *fiber.Ctx) (query.StockFilter, error) {
	f := query.StockFilter{
		Search:       searchTerms(c),
		Subwarehouse: strings.TrimSpace(c.Query("subwarehouse")),
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("bucket") {
		b, err := strconv.Atoi(strings.TrimSpace(string(raw)))
		if err != nil || b < 0 || b > query.OpenBucket {
			return query.StockFilter{}, domain.ErrInvalidInput
		}
		f.Buckets = append(f.Buckets, b)
	}
	return f, nil
}

// rangeFilter convierte el body de filtros. To cubre el día completo.
func rangeFilter(in dto.StageFiltersRequest) (query.RangeFilter, error) {
	f := query.RangeFilter{Subwarehouse: strings.TrimSpace(in.Subwarehouse)}
	if s := strings.TrimSpace(in.From); s != "" {
		from, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return query.RangeFilter{}, domain.ErrInvalidInput
		}
		f.From = &from
	}
	if s := strings.TrimSpace(in.To); s != "" {
		day, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return query.RangeFilter{}, domain.ErrInvalidInput
		}
		to := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &to
	}
	return f, nil
}
