package video

import (
	"testing"

	"github.com/google/uuid"

	"github.com/codelabs/catalog-backend/pkg/enums"
)

func sameIDSet(t *testing.T, got []uuid.UUID, want []uuid.UUID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("set size mismatch: got %d want %d", len(got), len(want))
	}
	set := make(map[uuid.UUID]struct{}, len(got))
	for _, id := range got {
		set[id] = struct{}{}
	}
	for _, id := range want {
		if _, ok := set[id]; !ok {
			t.Fatalf("missing id %s", id)
		}
	}
}

func TestNewVideoAssignsIdentityAndTimestamps(t *testing.T) {
	t.Parallel()

	cats := []uuid.UUID{uuid.New(), uuid.New()}
	v := NewVideo(Attributes{
		Title:      "System Design Interviews",
		LaunchYear: 2022,
		Duration:   120.10,
		Rating:     enums.RatingFree,
		Categories: cats,
	})

	if v.ID() == uuid.Nil {
		t.Fatal("expected a fresh id")
	}
	if !v.CreatedAt().Equal(v.UpdatedAt()) {
		t.Fatalf("createdAt %v != updatedAt %v on creation", v.CreatedAt(), v.UpdatedAt())
	}
	sameIDSet(t, v.Categories(), cats)
	if len(v.Genres()) != 0 || len(v.CastMembers()) != 0 {
		t.Fatal("expected empty genre and cast member sets")
	}
}

func TestAssociationSetsDropDuplicates(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	v := NewVideo(Attributes{
		Title:  "dup sets",
		Rating: enums.RatingAge12,
		Genres: []uuid.UUID{id, id, id},
	})

	if got := v.Genres(); len(got) != 1 || got[0] != id {
		t.Fatalf("expected deduplicated genre set, got %v", got)
	}
}

func TestUpdateReplacesStateWholesaleAndBumpsUpdatedAt(t *testing.T) {
	t.Parallel()

	v := NewVideo(Attributes{
		Title:      "before",
		Rating:     enums.RatingER,
		Categories: []uuid.UUID{uuid.New()},
	})
	createdAt := v.CreatedAt()
	updatedAt := v.UpdatedAt()

	newGenres := []uuid.UUID{uuid.New()}
	v.Update(Attributes{
		Title:       "after",
		Description: "replaced",
		LaunchYear:  2024,
		Duration:    95.5,
		Opened:      true,
		Published:   true,
		Rating:      enums.RatingAge18,
		Genres:      newGenres,
	})

	if v.Title() != "after" || !v.Published() || v.Rating() != enums.RatingAge18 {
		t.Fatal("update did not replace fields")
	}
	if len(v.Categories()) != 0 {
		t.Fatal("category set should have been replaced with the empty set")
	}
	sameIDSet(t, v.Genres(), newGenres)
	if !v.CreatedAt().Equal(createdAt) {
		t.Fatal("createdAt must never change")
	}
	if !v.UpdatedAt().After(updatedAt) {
		t.Fatalf("updatedAt %v not after %v", v.UpdatedAt(), updatedAt)
	}
}

func TestSlotSettersBumpUpdatedAt(t *testing.T) {
	t.Parallel()

	v := NewVideo(Attributes{Title: "slots", Rating: enums.RatingAge10})
	before := v.UpdatedAt()

	media := NewAudioVideoMedia("movie.mp4", "abc123", "videoId-x/type-video")
	v.SetVideo(media)

	if got := v.Video(); got == nil || !got.Equals(media) {
		t.Fatalf("video slot mismatch: %+v", got)
	}
	if !v.UpdatedAt().After(before) {
		t.Fatal("slot setter must bump updatedAt")
	}
	if v.Trailer() != nil || v.Banner() != nil {
		t.Fatal("other slots must stay empty")
	}
}

func TestSlotGettersReturnCopies(t *testing.T) {
	t.Parallel()

	v := NewVideo(Attributes{Title: "defensive", Rating: enums.RatingAge14})
	v.SetBanner(NewImageMedia("banner.png", "sum", "videoId-x/type-banner"))

	v.Banner().Checksum = "tampered"

	if v.Banner().Checksum != "sum" {
		t.Fatal("mutating the returned descriptor leaked into the aggregate")
	}
}

func TestRestoreRoundTripsState(t *testing.T) {
	t.Parallel()

	v := NewVideo(Attributes{
		Title:       "restore",
		Description: "snapshot",
		LaunchYear:  2021,
		Duration:    88,
		Opened:      true,
		Rating:      enums.RatingAge16,
		CastMembers: []uuid.UUID{uuid.New(), uuid.New()},
	})
	v.SetThumbnail(NewImageMedia("thumb.png", "t-sum", "videoId-y/type-thumbnail"))

	restored := Restore(State{
		ID:          v.ID(),
		Title:       v.Title(),
		Description: v.Description(),
		LaunchYear:  v.LaunchYear(),
		Duration:    v.Duration(),
		Opened:      v.Opened(),
		Published:   v.Published(),
		Rating:      v.Rating(),
		CreatedAt:   v.CreatedAt(),
		UpdatedAt:   v.UpdatedAt(),
		Thumbnail:   v.Thumbnail(),
		CastMembers: v.CastMembers(),
	})

	if restored.ID() != v.ID() || restored.Title() != v.Title() {
		t.Fatal("identity fields lost in restore")
	}
	if !restored.UpdatedAt().Equal(v.UpdatedAt()) {
		t.Fatal("restore must not touch timestamps")
	}
	if got := restored.Thumbnail(); got == nil || !got.Equals(v.Thumbnail()) {
		t.Fatal("thumbnail slot lost in restore")
	}
	sameIDSet(t, restored.CastMembers(), v.CastMembers())
}

func TestMediaEqualityIsContentAddressed(t *testing.T) {
	t.Parallel()

	a := NewAudioVideoMedia("one.mp4", "same-sum", "same/key")
	b := NewAudioVideoMedia("two.mp4", "same-sum", "same/key")
	c := NewAudioVideoMedia("one.mp4", "other-sum", "same/key")

	if !a.Equals(b) {
		t.Fatal("descriptors with equal checksum and location must be equal")
	}
	if a.Equals(c) {
		t.Fatal("checksum mismatch must not compare equal")
	}
}
