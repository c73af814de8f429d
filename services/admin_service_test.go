package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_DashboardAndDeletes(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, e.auth.SeedAdmin(ctx, "admin@example.com", "supersecret"))
	admin, err := e.users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)

	owner := e.user(t, "owner@example.com")
	in := fridgeInput()
	in.Receipt = receipt("bill.pdf", "pdf")
	a, err := e.appl.Create(ctx, Actor{UserID: owner.ID}, in)
	require.NoError(t, err)
	b, err := e.appl.Create(ctx, Actor{UserID: owner.ID}, fridgeInput())
	require.NoError(t, err)
	_, err = e.svcRecs.Create(ctx, Actor{UserID: owner.ID}, b.ID, repairInput(date(2024, time.May, 5)))
	require.NoError(t, err)

	d, err := e.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.TotalUsers)
	assert.EqualValues(t, 2, d.TotalAppliances)
	assert.EqualValues(t, 1, d.TotalServiceRecords)
	require.Len(t, d.Appliances, 2)
	require.NotNil(t, d.Appliances[0].User)
	assert.Equal(t, "owner@example.com", d.Appliances[0].User.Email)

	view, err := e.admin.Appliance(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, view.ServiceRecords, 1)

	require.NoError(t, e.admin.DeleteAppliance(ctx, admin.ID, b.ID))
	_, err = e.admin.Appliance(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var verr *ValidationError
	require.ErrorAs(t, e.admin.DeleteUser(ctx, admin.ID, admin.ID), &verr)

	require.NoError(t, e.admin.DeleteUser(ctx, admin.ID, owner.ID))
	assert.Equal(t, []string{a.ReceiptKey}, e.receipts.deleted)

	d, err = e.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, d.TotalUsers)
	assert.Zero(t, d.TotalAppliances)
	assert.Zero(t, d.TotalServiceRecords)

	assert.ErrorIs(t, e.admin.DeleteUser(ctx, admin.ID, owner.ID), ErrNotFound)
}
