package services

import (
	"testing"

	"contest-scoring-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRejectsDuplicateWithoutOverwrite(t *testing.T) {
	db := newTestDB(t)
	svc := NewValidationService(db, NewRankingsNotifier())
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")

	first, err := svc.Record(p.ID, zone.ID, bloc.ID, models.KindZone)
	require.NoError(t, err)

	_, err = svc.Record(p.ID, zone.ID, bloc.ID, models.KindZone)
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	// The ledger still holds exactly the first row.
	var rows []models.Validation
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ID)
}

func TestRecordAllowsDistinctKindsOnSameZone(t *testing.T) {
	db := newTestDB(t)
	svc := NewValidationService(db, NewRankingsNotifier())
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")

	for _, kind := range []models.ValidationKind{models.KindZone, models.KindTop, models.KindIntermediate} {
		_, err := svc.Record(p.ID, zone.ID, bloc.ID, kind)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, countValidations(t, db))
}

func TestRecordMissingReferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewValidationService(db, NewRankingsNotifier())
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")
	otherBloc, _ := seedBlocWithZone(t, db, contest.ID, "Bloc 2")

	_, err := svc.Record("missing", zone.ID, bloc.ID, models.KindZone)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Record(p.ID, "missing", bloc.ID, models.KindZone)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Record(p.ID, zone.ID, "missing", models.KindZone)
	assert.ErrorIs(t, err, ErrNotFound)

	// Zone belongs to bloc 1, not bloc 2.
	_, err = svc.Record(p.ID, zone.ID, otherBloc.ID, models.KindZone)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.EqualValues(t, 0, countValidations(t, db))
}

func TestRecordLeavesNoRowForDeletedParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewValidationService(db, NewRankingsNotifier())
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")

	require.NoError(t, db.Delete(&models.Participant{}, "id = ?", p.ID).Error)

	// The whole Record runs in one transaction, so a participant gone at
	// insert time means no ledger row, not an orphan.
	_, err := svc.Record(p.ID, zone.ID, bloc.ID, models.KindZone)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 0, countValidations(t, db))
}

func TestRemoveIsIdempotentAndFiltered(t *testing.T) {
	db := newTestDB(t)
	notifier := NewRankingsNotifier()
	svc := NewValidationService(db, notifier)
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc1, zone1 := seedBlocWithZone(t, db, contest.ID, "Bloc 1")
	bloc2, zone2 := seedBlocWithZone(t, db, contest.ID, "Bloc 2")

	_, err := svc.Record(p.ID, zone1.ID, bloc1.ID, models.KindZone)
	require.NoError(t, err)
	_, err = svc.Record(p.ID, zone1.ID, bloc1.ID, models.KindTop)
	require.NoError(t, err)
	_, err = svc.Record(p.ID, zone2.ID, bloc2.ID, models.KindZone)
	require.NoError(t, err)

	// Narrowed delete only touches bloc 1's top row.
	count, err := svc.Remove(RemoveFilter{ParticipantID: p.ID, BlocID: bloc1.ID, Kind: models.KindTop})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.EqualValues(t, 2, countValidations(t, db))

	// Second identical delete removes nothing and still succeeds.
	count, err = svc.Remove(RemoveFilter{ParticipantID: p.ID, BlocID: bloc1.ID, Kind: models.KindTop})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Participant-wide delete clears the rest.
	count, err = svc.Remove(RemoveFilter{ParticipantID: p.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.EqualValues(t, 0, countValidations(t, db))
}

func TestRemoveByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewValidationService(db, NewRankingsNotifier())
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")

	v, err := svc.Record(p.ID, zone.ID, bloc.ID, models.KindZone)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveByID(v.ID))
	assert.ErrorIs(t, svc.RemoveByID(v.ID), ErrNotFound)
}

func TestQueryEnrichesWithNames(t *testing.T) {
	db := newTestDB(t)
	svc := NewValidationService(db, NewRankingsNotifier())
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	other := seedParticipant(t, db, "Hugo", "Durand", "U13", "homme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")

	_, err := svc.Record(p.ID, zone.ID, bloc.ID, models.KindTop)
	require.NoError(t, err)
	_, err = svc.Record(other.ID, zone.ID, bloc.ID, models.KindZone)
	require.NoError(t, err)

	all, err := svc.Query("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.Query(p.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Léa", mine[0].FirstName)
	assert.Equal(t, "Martin", mine[0].LastName)
	assert.Equal(t, bloc.Name, mine[0].BlocName)
	assert.Equal(t, zone.Name, mine[0].ZoneName)
	assert.Equal(t, models.KindTop, mine[0].Kind)
}

func TestLedgerMutationsNotify(t *testing.T) {
	db := newTestDB(t)
	notifier := NewRankingsNotifier()
	svc := NewValidationService(db, notifier)
	_, events := notifier.Subscribe()
	p := seedParticipant(t, db, "Léa", "Martin", "U15", "femme")
	contest := seedContest(t, db, "contest", true)
	bloc, zone := seedBlocWithZone(t, db, contest.ID, "Bloc 1")

	_, err := svc.Record(p.ID, zone.ID, bloc.ID, models.KindZone)
	require.NoError(t, err)
	select {
	case <-events:
	default:
		t.Fatal("expected a notification after record")
	}

	// A delete that removes nothing must stay silent.
	_, err = svc.Remove(RemoveFilter{ParticipantID: p.ID, Kind: models.KindTop})
	require.NoError(t, err)
	select {
	case <-events:
		t.Fatal("unexpected notification for no-op delete")
	default:
	}
}
