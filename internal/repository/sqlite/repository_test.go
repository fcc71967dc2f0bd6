package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aportes-api/internal/domain"
	"aportes-api/internal/repository"
)

func setupDB(t *testing.T) (*sql.DB, repository.UserRepository, repository.AporteRepository, repository.GastoRepository) {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := NewUserRepository(db)
	aportes := NewAporteRepository(db)
	gastos := NewGastoRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, aportes.Init(ctx))
	require.NoError(t, gastos.Init(ctx))

	return db, users, aportes, gastos
}

func createUsuario(t *testing.T, users repository.UserRepository, nombre, usuario string) int64 {
	t.Helper()
	id, err := users.Create(context.Background(), &domain.Usuario{
		Nombre:       nombre,
		Usuario:      usuario,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}

func TestUserRepositoryDuplicateUsuario(t *testing.T) {
	_, users, _, _ := setupDB(t)
	ctx := context.Background()

	createUsuario(t, users, "Ana", "ana")

	_, err := users.Create(ctx, &domain.Usuario{Nombre: "Otra", Usuario: "ana", PasswordHash: "y"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsuario)

	// The first row is intact.
	user, err := users.GetByUsuario(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Nombre)
}

func TestUserRepositoryNotFound(t *testing.T) {
	_, users, _, _ := setupDB(t)

	_, err := users.GetByUsuario(context.Background(), "nadie")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAporteOwnershipScoping(t *testing.T) {
	_, users, aportes, _ := setupDB(t)
	ctx := context.Background()

	ana := createUsuario(t, users, "Ana", "ana")
	beto := createUsuario(t, users, "Beto", "beto")

	aporte := &domain.Aporte{UsuarioID: ana, Monto: 10000, NumeroAporte: 1, Fecha: "2024-01-01", Banco: "X"}
	_, err := aportes.Create(ctx, aporte)
	require.NoError(t, err)

	// Beto cannot update or delete Ana's entry; both misses look identical
	// to a nonexistent id.
	_, err = aportes.Update(ctx, &domain.Aporte{ID: aporte.ID, UsuarioID: beto, Monto: 1, Fecha: "2024-02-02"}, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = aportes.Delete(ctx, aporte.ID, beto)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The entry is unchanged and still owned by Ana.
	list, err := aportes.ListByUsuario(ctx, ana)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.Centavos(10000), list[0].Monto)
	assert.Equal(t, "2024-01-01", list[0].Fecha)

	list, err = aportes.ListByUsuario(ctx, beto)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAporteUpdateKeepsImagenWhenNil(t *testing.T) {
	_, users, aportes, _ := setupDB(t)
	ctx := context.Background()

	ana := createUsuario(t, users, "Ana", "ana")

	aporte := &domain.Aporte{UsuarioID: ana, Monto: 5000, NumeroAporte: 1, Fecha: "2024-01-01", Banco: "X", ImagenURL: "https://img/recibo.jpg"}
	_, err := aportes.Create(ctx, aporte)
	require.NoError(t, err)

	updated, err := aportes.Update(ctx, &domain.Aporte{ID: aporte.ID, UsuarioID: ana, Monto: 7000, NumeroAporte: 2, Fecha: "2024-01-05", Banco: "Y"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Centavos(7000), updated.Monto)
	assert.Equal(t, "https://img/recibo.jpg", updated.ImagenURL, "omitting imagen must not clear it")

	nueva := "https://img/nuevo.png"
	updated, err = aportes.Update(ctx, &domain.Aporte{ID: aporte.ID, UsuarioID: ana, Monto: 7000, NumeroAporte: 2, Fecha: "2024-01-05", Banco: "Y"}, &nueva)
	require.NoError(t, err)
	assert.Equal(t, nueva, updated.ImagenURL)
}

func TestAporteTotals(t *testing.T) {
	_, users, aportes, _ := setupDB(t)
	ctx := context.Background()

	ana := createUsuario(t, users, "Ana", "ana")
	beto := createUsuario(t, users, "Beto", "beto")

	for _, a := range []domain.Aporte{
		{UsuarioID: ana, Monto: 10050, NumeroAporte: 1, Fecha: "2024-01-01", Banco: "X"},
		{UsuarioID: ana, Monto: 2501, NumeroAporte: 2, Fecha: "2024-02-01", Banco: "X"},
		{UsuarioID: beto, Monto: 999, NumeroAporte: 1, Fecha: "2024-01-15", Banco: "Y"},
	} {
		a := a
		_, err := aportes.Create(ctx, &a)
		require.NoError(t, err)
	}

	total, err := aportes.TotalByUsuario(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, domain.Centavos(12551), total)

	total, err = aportes.TotalByUsuario(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, domain.Centavos(0), total, "user without entries sums to zero")

	total, err = aportes.TotalGeneral(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Centavos(13550), total)
}

func TestGastoSaldoTotal(t *testing.T) {
	_, users, aportes, gastos := setupDB(t)
	ctx := context.Background()

	ana := createUsuario(t, users, "Ana", "ana")

	_, err := aportes.Create(ctx, &domain.Aporte{UsuarioID: ana, Monto: 10000, NumeroAporte: 1, Fecha: "2024-01-01", Banco: "X"})
	require.NoError(t, err)
	_, err = gastos.Create(ctx, &domain.Gasto{UsuarioID: ana, Monto: 4000, Descripcion: "rent", Fecha: "2024-01-02"})
	require.NoError(t, err)

	saldo, err := gastos.SaldoTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Centavos(6000), saldo)

	// Spending past the contributions drives the balance negative.
	_, err = gastos.Create(ctx, &domain.Gasto{UsuarioID: ana, Monto: 12000, Descripcion: "car", Fecha: "2024-01-03"})
	require.NoError(t, err)

	saldo, err = gastos.SaldoTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Centavos(-6000), saldo)
}

func TestGastoSaldoTotalEmpty(t *testing.T) {
	_, _, _, gastos := setupDB(t)

	saldo, err := gastos.SaldoTotal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Centavos(0), saldo)
}

func TestGastoListAllWithUsuario(t *testing.T) {
	_, users, _, gastos := setupDB(t)
	ctx := context.Background()

	ana := createUsuario(t, users, "Ana", "ana")
	beto := createUsuario(t, users, "Beto", "beto")

	for _, g := range []domain.Gasto{
		{UsuarioID: ana, Monto: 1000, Descripcion: "luz", Fecha: "2024-01-01"},
		{UsuarioID: beto, Monto: 2000, Descripcion: "agua", Fecha: "2024-03-01"},
		{UsuarioID: ana, Monto: 3000, Descripcion: "gas", Fecha: "2024-02-01"},
	} {
		g := g
		_, err := gastos.Create(ctx, &g)
		require.NoError(t, err)
	}

	todos, err := gastos.ListAllWithUsuario(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)

	// Newest fecha first, owner names joined in.
	assert.Equal(t, "agua", todos[0].Descripcion)
	assert.Equal(t, "Beto", todos[0].UsuarioNombre)
	assert.Equal(t, "gas", todos[1].Descripcion)
	assert.Equal(t, "Ana", todos[1].UsuarioNombre)
	assert.Equal(t, "luz", todos[2].Descripcion)
}

func TestGastoDeleteReturnsEntry(t *testing.T) {
	_, users, _, gastos := setupDB(t)
	ctx := context.Background()

	ana := createUsuario(t, users, "Ana", "ana")

	gasto := &domain.Gasto{UsuarioID: ana, Monto: 4000, Descripcion: "rent", Fecha: "2024-01-02"}
	_, err := gastos.Create(ctx, gasto)
	require.NoError(t, err)

	deleted, err := gastos.Delete(ctx, gasto.ID, ana)
	require.NoError(t, err)
	assert.Equal(t, "rent", deleted.Descripcion)

	_, err = gastos.Delete(ctx, gasto.ID, ana)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := gastos.ListByUsuario(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, list)
}
