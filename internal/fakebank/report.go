// ABOUTME: Account statement computation for the fake bank
// ABOUTME: Running balance per account over a UTC date range with signed withdrawals

package fakebank

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
)

const (
	isoDate = "2006-01-02"
	// localDateTime renders a movement time without its zone.
	localDateTime = "2006-01-02T15:04:05.999999"
)

// Report builds the statement of clienteID between desde and hasta
// (inclusive ISO dates, interpreted in UTC).
func (b *Bank) Report(clienteID int64, desde, hasta string) (api.Report, error) {
	from, err := time.Parse(isoDate, desde)
	if err != nil {
		return api.Report{}, business(msgBadBody)
	}
	to, err := time.Parse(isoDate, hasta)
	if err != nil {
		return api.Report{}, business(msgBadBody)
	}
	end := to.Add(24*time.Hour - time.Second)

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.customers[clienteID]
	if !ok {
		return api.Report{}, notFound("Cliente %d no existe", clienteID)
	}

	var owned []*account
	for _, a := range b.accounts {
		if a.clienteID == clienteID {
			owned = append(owned, a)
		}
	}
	slices.SortFunc(owned, func(x, y *account) int { return cmp.Compare(x.id, y.id) })

	type dated struct {
		at   time.Time
		line api.ReportLine
	}
	var lines []dated
	debitos, creditos := decimal.Zero, decimal.Zero

	for _, a := range owned {
		running := decimal.Zero
		var inRange []api.Movement
		for _, m := range b.movements {
			if m.CuentaID != a.id {
				continue
			}
			at := m.Fecha.UTC()
			switch {
			case at.Before(from):
				running = running.Add(signed(m))
			case !at.After(end):
				inRange = append(inRange, m)
			}
		}
		slices.SortStableFunc(inRange, func(x, y api.Movement) int { return x.Fecha.Compare(y.Fecha) })

		for _, m := range inRange {
			amount := signed(m)
			if amount.IsNegative() {
				debitos = debitos.Add(amount.Abs())
			} else {
				creditos = creditos.Add(amount)
			}
			line := api.ReportLine{
				Fecha:           m.Fecha.Format(localDateTime),
				Cliente:         c.Nombre,
				NumeroCuenta:    a.numero,
				TipoCuenta:      a.tipo,
				SaldoInicial:    running,
				Estado:          a.estado,
				Movimiento:      amount,
				SaldoDisponible: running.Add(amount),
			}
			running = line.SaldoDisponible
			lines = append(lines, dated{at: m.Fecha, line: line})
		}
	}

	slices.SortStableFunc(lines, func(x, y dated) int { return x.at.Compare(y.at) })

	report := api.Report{
		ClienteID:     clienteID,
		ClienteNombre: c.Nombre,
		Desde:         desde,
		Hasta:         hasta,
		Items:         make([]api.ReportLine, 0, len(lines)),
		TotalDebitos:  debitos,
		TotalCreditos: creditos,
	}
	for _, d := range lines {
		report.Items = append(report.Items, d.line)
	}
	return report, nil
}

// signed returns the movement amount negated for withdrawals.
func signed(m api.Movement) decimal.Decimal {
	if strings.EqualFold(m.Tipo, api.MovementWithdrawal) {
		return m.Valor.Neg()
	}
	return m.Valor
}
