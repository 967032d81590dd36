// ABOUTME: gin routes of the fake banking API under /api
// ABOUTME: Binds query and JSON input, maps failures to ErrorResponse payloads

package fakebank

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
)

// Handler returns the HTTP handler serving the API under /api.
func (b *Bank) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(slog.Default().With("component", "fakebank")))

	g := r.Group("/api")

	g.GET("/clientes", func(c *gin.Context) {
		c.JSON(http.StatusOK, b.Customers())
	})
	g.POST("/clientes", b.createCustomer)
	g.PUT("/clientes/:id", b.updateCustomer)
	g.DELETE("/clientes/:id", b.deleteCustomer)

	g.GET("/cuentas", func(c *gin.Context) {
		c.JSON(http.StatusOK, b.Accounts())
	})
	g.POST("/cuentas", b.createAccount)
	g.PUT("/cuentas/:id", b.updateAccount)
	g.DELETE("/cuentas/:id", b.deleteAccount)

	g.GET("/movimientos", b.listMovements)
	g.POST("/movimientos/deposito", b.deposit)
	g.POST("/movimientos/retiro", b.withdraw)
	g.POST("/movimientos/transferencia", b.transfer)

	g.GET("/reportes", b.reportJSON)
	g.GET("/reportes/json", b.reportJSON)
	g.GET("/reportes/pdf", b.reportPDF)

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (b *Bank) createCustomer(c *gin.Context) {
	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, business(msgBadBody))
		return
	}
	out, err := b.CreateCustomer(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (b *Bank) updateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, business(msgBadBody))
		return
	}
	out, err := b.UpdateCustomer(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (b *Bank) deleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := b.DeleteCustomer(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (b *Bank) createAccount(c *gin.Context) {
	var in AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, business(msgBadBody))
		return
	}
	out, err := b.CreateAccount(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (b *Bank) updateAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, business(msgBadBody))
		return
	}
	out, err := b.UpdateAccount(id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (b *Bank) deleteAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := b.DeleteAccount(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (b *Bank) listMovements(c *gin.Context) {
	var cuentaID int64
	if raw := c.Query("cuentaId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fail(c, business(msgBadBody))
			return
		}
		cuentaID = id
	}
	c.JSON(http.StatusOK, b.Movements(cuentaID))
}

func (b *Bank) deposit(c *gin.Context) {
	b.accountMovement(c, b.Deposit)
}

func (b *Bank) withdraw(c *gin.Context) {
	b.accountMovement(c, b.Withdraw)
}

func (b *Bank) accountMovement(c *gin.Context, op func(int64, decimal.Decimal, string) (api.Movement, error)) {
	cuentaID, ok := queryID(c, "cuentaId")
	if !ok {
		return
	}
	monto, ok := queryAmount(c)
	if !ok {
		return
	}
	m, err := op(cuentaID, monto, c.Query("ref"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (b *Bank) transfer(c *gin.Context) {
	origenID, ok := queryID(c, "origenId")
	if !ok {
		return
	}
	destinoID, ok := queryID(c, "destinoId")
	if !ok {
		return
	}
	monto, ok := queryAmount(c)
	if !ok {
		return
	}
	if err := b.Transfer(origenID, destinoID, monto, c.Query("ref")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (b *Bank) reportJSON(c *gin.Context) {
	report, ok := b.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (b *Bank) reportPDF(c *gin.Context) {
	report, ok := b.report(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", "attachment; filename=reporte.pdf")
	c.Data(http.StatusOK, "application/pdf", RenderPDF(report))
}

func (b *Bank) report(c *gin.Context) (api.Report, bool) {
	clienteID, ok := queryID(c, "clienteId")
	if !ok {
		return api.Report{}, false
	}
	report, err := b.Report(clienteID, c.Query("desde"), c.Query("hasta"))
	if err != nil {
		fail(c, err)
		return api.Report{}, false
	}
	return report, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, business(msgBadBody))
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		fail(c, business("Parámetro inválido: "+name))
		return 0, false
	}
	return id, true
}

func queryAmount(c *gin.Context) (decimal.Decimal, bool) {
	monto, err := decimal.NewFromString(c.Query("monto"))
	if err != nil {
		fail(c, business("Parámetro inválido: monto"))
		return decimal.Decimal{}, false
	}
	return monto, true
}

// fail writes err as an ErrorResponse. Errors that are not bank errors
// become 500s with a generic message.
func fail(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Error interno. Intenta más tarde."
	var be *bankError
	if errors.As(err, &be) {
		status, message = be.status, be.message
	}
	c.AbortWithStatusJSON(status, api.ErrorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().Format(time.RFC3339Nano),
	})
}
