package services

import (
	"net/http/httptest"
	"testing"

	"contest-scoring-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestDeleteAllEndpointsNotifyOnlyWhenLedgerRowsRemoved(t *testing.T) {
	db := newTestDB(t)
	notifier := NewRankingsNotifier()
	svc := NewBlocService(db, notifier)
	ledger := NewValidationService(db, notifier)

	app := fiber.New()
	app.Delete("/blocs", svc.DeleteAllBlocs)
	app.Delete("/zones", svc.DeleteAllZones)

	_, events := notifier.Subscribe()

	// Empty database: both resets succeed but stay silent.
	for _, path := range []string{"/zones", "/blocs"} {
		resp, err := app.Test(httptest.NewRequest("DELETE", path, nil), -1)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)
	}
	select {
	case <-events:
		t.Fatal("unexpected notification for no-op reset")
	default:
	}

	// With a ledger row present, the reset notifies.
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")
	_, err := ledger.Record(p.ID, zone.ID, bloc.ID, models.KindZone)
	require.NoError(t, err)
	<-events // drain the record's own signal

	resp, err := app.Test(httptest.NewRequest("DELETE", "/blocs", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	select {
	case <-events:
	default:
		t.Fatal("expected a notification after removing ledger rows")
	}
}
