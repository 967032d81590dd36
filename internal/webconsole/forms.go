// ABOUTME: Lenient binding of HTML form values onto controller state
// ABOUTME: Unparsable numbers bind as zero so the controller guards ignore them

package webconsole

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pvchallenge/banca-console/internal/api"
)

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(formString(r, key))
	if err != nil {
		return 0
	}
	return n
}

func formInt64(r *http.Request, key string) int64 {
	n, err := strconv.ParseInt(formString(r, key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// formDecimal accepts a comma as decimal separator.
func formDecimal(r *http.Request, key string) decimal.Decimal {
	s := strings.ReplaceAll(formString(r, key), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// formBool reads a checkbox: absent means false.
func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(formString(r, key)) {
	case "on", "true", "1", "si", "sí":
		return true
	default:
		return false
	}
}

// formEditID reads the record a submitted form was editing. Zero or a
// missing field means the form was in create mode.
func formEditID(r *http.Request) *int64 {
	id := formInt64(r, "editId")
	if id <= 0 {
		return nil
	}
	return &id
}

func bindCustomerForm(r *http.Request) api.CustomerForm {
	return api.CustomerForm{
		Nombre:         formString(r, "nombre"),
		Genero:         formString(r, "genero"),
		Edad:           formInt(r, "edad"),
		Identificacion: formString(r, "identificacion"),
		Direccion:      formString(r, "direccion"),
		Telefono:       formString(r, "telefono"),
		Contrasena:     r.PostFormValue("contrasena"),
		Estado:         formBool(r, "estado"),
	}
}

func bindAccountForm(r *http.Request) api.AccountForm {
	return api.AccountForm{
		Numero:       formString(r, "numero"),
		Tipo:         formString(r, "tipo"),
		SaldoInicial: formDecimal(r, "saldoInicial"),
		Estado:       formBool(r, "estado"),
		ClienteID:    formInt64(r, "clienteId"),
	}
}
