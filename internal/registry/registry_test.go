package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeGlorio/AI-Job-Matching/internal/model"
)

func newTestRegistry() *Registry {
	r := New()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	r.now = func() time.Time { return fixed }
	r.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return r
}

func TestNewRegistry(t *testing.T) {
	r := New()
	require.NotNil(t, r)

	seekers, postings := r.Len()
	assert.Zero(t, seekers)
	assert.Zero(t, postings)
	assert.Empty(t, r.Seekers())
	assert.Empty(t, r.Postings())
}

func TestRegisterSeeker_AssignsIdentity(t *testing.T) {
	r := newTestRegistry()

	stored, err := r.RegisterSeeker(model.JobSeeker{Name: "  Alice ", Email: "alice@example.com", ResumeText: "Python"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", stored.ID)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, "Python", stored.ResumeText)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), stored.RegisteredAt)

	seekers := r.Seekers()
	require.Len(t, seekers, 1)
	assert.Equal(t, stored, seekers[0])
}

func TestRegisterSeeker_RealIDsAreUnique(t *testing.T) {
	r := New()

	a, err := r.RegisterSeeker(model.JobSeeker{Name: "Same", Email: "same@example.com"})
	require.NoError(t, err)
	b, err := r.RegisterSeeker(model.JobSeeker{Name: "Same", Email: "same@example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, r.Seekers(), 2, "duplicates are allowed")
}

func TestRegisterSeeker_EmptyResumeIsValid(t *testing.T) {
	r := newTestRegistry()

	_, err := r.RegisterSeeker(model.JobSeeker{Name: "Eve"})
	require.NoError(t, err)
}

func TestRegisterSeeker_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		seeker model.JobSeeker
	}{
		{name: "blank name", seeker: model.JobSeeker{Name: "   ", ResumeText: "go"}},
		{name: "invalid utf8 resume", seeker: model.JobSeeker{Name: "Mallory", ResumeText: "go\xff"}},
		{name: "invalid utf8 email", seeker: model.JobSeeker{Name: "Mallory", Email: "\xfe@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			_, err := r.RegisterSeeker(tt.seeker)
			require.ErrorIs(t, err, ErrInvalidInput)

			seekers, _ := r.Len()
			assert.Zero(t, seekers)
		})
	}
}

func TestRegisterSeeker_ReportsFirstInvalidField(t *testing.T) {
	seeker := model.JobSeeker{Name: "Mallory\xff", Email: "\xfe@example.com", ResumeText: "go\xff"}

	for i := 0; i < 20; i++ {
		_, err := newTestRegistry().RegisterSeeker(seeker)
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "seeker name is not valid UTF-8")
	}

	_, err := newTestRegistry().RegisterSeeker(model.JobSeeker{Name: "Mallory", Email: "\xfe@example.com", ResumeText: "go\xff"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "seeker email is not valid UTF-8")
}

func TestRegisterPosting_CopiesSlices(t *testing.T) {
	r := newTestRegistry()

	skills := []string{"Python", "SQL"}
	questions := []string{"Why us?"}
	stored, err := r.RegisterPosting(model.JobPosting{Title: "Backend Role", Skills: skills, Questions: questions})
	require.NoError(t, err)

	skills[0] = "COBOL"
	stored.Skills[1] = "Fortran"

	postings := r.Postings()
	require.Len(t, postings, 1)
	assert.Equal(t, []string{"Python", "SQL"}, postings[0].Skills)
	assert.Equal(t, []string{"Why us?"}, postings[0].Questions)
	assert.Equal(t, "id-1", postings[0].ID)

	postings[0].Skills[0] = "Changed"
	assert.Equal(t, "Python", r.Postings()[0].Skills[0])
}

func TestRegisterPosting_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		posting model.JobPosting
	}{
		{name: "blank title", posting: model.JobPosting{Title: "", Skills: []string{"Go"}}},
		{name: "blank skill", posting: model.JobPosting{Title: "Role", Skills: []string{"Go", " "}}},
		{name: "invalid utf8 skill", posting: model.JobPosting{Title: "Role", Skills: []string{"\xff"}}},
		{name: "invalid utf8 question", posting: model.JobPosting{Title: "Role", Questions: []string{"\xff"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			_, err := r.RegisterPosting(tt.posting)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterPosting_EmptySkillsAreValid(t *testing.T) {
	r := newTestRegistry()

	_, err := r.RegisterPosting(model.JobPosting{Title: "Open role"})
	require.NoError(t, err)

	_, postings := r.Len()
	assert.Equal(t, 1, postings)
}

func TestRegistry_KeepsRegistrationOrder(t *testing.T) {
	r := newTestRegistry()

	for _, name := range []string{"c", "a", "b"} {
		_, err := r.RegisterSeeker(model.JobSeeker{Name: name})
		require.NoError(t, err)
		_, err = r.RegisterPosting(model.JobPosting{Title: name})
		require.NoError(t, err)
	}

	snap := r.Snapshot()
	require.Len(t, snap.Seekers, 3)
	require.Len(t, snap.Postings, 3)
	for i, name := range []string{"c", "a", "b"} {
		assert.Equal(t, name, snap.Seekers[i].Name)
		assert.Equal(t, name, snap.Postings[i].Title)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := r.RegisterSeeker(model.JobSeeker{Name: fmt.Sprintf("s-%d-%d", w, i), ResumeText: "go"})
				assert.NoError(t, err)
				_, err = r.RegisterPosting(model.JobPosting{Title: fmt.Sprintf("p-%d-%d", w, i), Skills: []string{"go"}})
				assert.NoError(t, err)
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			snap := r.Snapshot()
			for _, s := range snap.Seekers {
				assert.NotEmpty(t, s.ID)
			}
			for _, p := range snap.Postings {
				assert.Equal(t, []string{"go"}, p.Skills)
			}
		}
	}()

	wg.Wait()
	<-done

	seekers, postings := r.Len()
	assert.Equal(t, writers*perWriter, seekers)
	assert.Equal(t, writers*perWriter, postings)
}
