package badge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/notify"
	"gatepass/pkg/requestcontext"
	"gatepass/pkg/testutil"
)

// Full reception-desk flow: register, issue, scan, confirm, notify.
func TestReceptionFlow(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	store := newFakeVisitorStore(visitorFixture(7, "Alice Koné", "Acme",
		time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)))
	dispatcher := &fakeDispatcher{result: allOK()}
	svc := newTestService(t, store, dispatcher)

	var token string
	testutil.Given(t, "a visitor with a freshly issued badge", func(t *testing.T) {
		var err error
		token, err = svc.Generate(ctx, 7)
		require.NoError(t, err)
	})

	var report *ValidationReport
	testutil.When(t, "security scans the badge on the visit day", func(t *testing.T) {
		var err error
		report, err = svc.Validate(ctx, token)
		require.NoError(t, err)
	})

	testutil.Then(t, "the scan is valid and check-in confirms exactly once", func(t *testing.T) {
		require.True(t, report.IsValid)
		require.NotEmpty(t, report.ScanSession)

		v, err := svc.ConfirmCheckIn(ctx, report.ScanSession)
		require.NoError(t, err)
		assert.Equal(t, "Alice Koné", v.Name)

		_, err = svc.ConfirmCheckIn(ctx, report.ScanSession)
		assert.Error(t, err)
	})

	testutil.Then(t, "security is notified and the record marked", func(t *testing.T) {
		result, err := svc.NotifySecurity(ctx, 7)
		require.NoError(t, err)
		assert.True(t, result.AllSucceeded)
		assert.True(t, store.visitors[7].Notified)

		require.Len(t, dispatcher.events, 1)
		assert.Equal(t, notify.KindVisitorArrival, dispatcher.events[0].Kind)
	})
}
