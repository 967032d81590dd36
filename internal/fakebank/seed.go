// ABOUTME: Demo data for the fake bank
// ABOUTME: Three customers with accounts and a few movements for local development

package fakebank

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func boolPtr(b bool) *bool { return &b }

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Seed loads demo customers, accounts and movements into b.
func Seed(b *Bank) error {
	customers := []CustomerInput{
		{Nombre: "Jose Lema", Genero: "Masculino", Edad: 35, Identificacion: "1712345678", Direccion: "Otavalo sn y principal", Telefono: "098254785", ClienteID: "jlema", Contrasena: "1234", Estado: boolPtr(true)},
		{Nombre: "Marianela Montalvo", Genero: "Femenino", Edad: 29, Identificacion: "1723456789", Direccion: "Amazonas y NNUU", Telefono: "097548965", ClienteID: "mmontalvo", Contrasena: "5678", Estado: boolPtr(true)},
		{Nombre: "Juan Osorio", Genero: "Masculino", Edad: 41, Identificacion: "1734567890", Direccion: "13 junio y Equinoccial", Telefono: "098874587", ClienteID: "josorio", Contrasena: "1245", Estado: boolPtr(true)},
	}
	ids := make([]int64, len(customers))
	for i, in := range customers {
		c, err := b.CreateCustomer(in)
		if err != nil {
			return fmt.Errorf("seeding customer %s: %w", in.Nombre, err)
		}
		ids[i] = c.ID
	}

	accounts := []AccountInput{
		{Numero: "478758", Tipo: "Ahorro", SaldoInicial: amount("2000"), ClienteID: ids[0]},
		{Numero: "225487", Tipo: "Corriente", SaldoInicial: amount("100"), ClienteID: ids[1]},
		{Numero: "495878", Tipo: "Ahorro", SaldoInicial: amount("0"), ClienteID: ids[2]},
		{Numero: "496825", Tipo: "Ahorro", SaldoInicial: amount("540"), ClienteID: ids[1]},
		{Numero: "585545", Tipo: "Corriente", SaldoInicial: amount("1000"), ClienteID: ids[0]},
	}
	acct := make(map[string]int64, len(accounts))
	for _, in := range accounts {
		a, err := b.CreateAccount(in)
		if err != nil {
			return fmt.Errorf("seeding account %s: %w", in.Numero, err)
		}
		acct[in.Numero] = a.ID
	}

	if _, err := b.Withdraw(acct["478758"], decimal.NewFromInt(575), "retiro cajero"); err != nil {
		return fmt.Errorf("seeding withdrawal: %w", err)
	}
	if _, err := b.Deposit(acct["225487"], decimal.NewFromInt(600), "deposito ventanilla"); err != nil {
		return fmt.Errorf("seeding deposit: %w", err)
	}
	if _, err := b.Deposit(acct["495878"], decimal.NewFromInt(150), "deposito ventanilla"); err != nil {
		return fmt.Errorf("seeding deposit: %w", err)
	}
	if err := b.Transfer(acct["496825"], acct["585545"], decimal.NewFromInt(540), "pago"); err != nil {
		return fmt.Errorf("seeding transfer: %w", err)
	}
	return nil
}
