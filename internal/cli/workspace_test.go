package cli

import (
	"bytes"
	"testing"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessions() []*model.Session {
	return []*model.Session{
		{ID: "3f2a9c10-aaaa", Date: "2024-01-20", StudentName: "Budi", Topic: "Algebra", Duration: 1.5, Fee: decimal.NewFromInt(50000)},
		{ID: "3f2b0000-bbbb", Date: "2024-01-15", StudentName: "Siti", Topic: "Geometry", Duration: 2, Fee: decimal.NewFromInt(75000)},
		{ID: "7c1d0000-cccc", Date: "2024-01-10", StudentName: "Andi", Topic: "English", Duration: 1, Fee: decimal.NewFromInt(40000)},
	}
}

func TestResolveSession(t *testing.T) {
	sessions := testSessions()

	found, err := resolveSession(sessions, "3f2b0000-bbbb")
	require.NoError(t, err)
	assert.Equal(t, "Siti", found.StudentName)

	found, err = resolveSession(sessions, " 7c1d ")
	require.NoError(t, err)
	assert.Equal(t, "Andi", found.StudentName)

	_, err = resolveSession(sessions, "3f2")
	assert.ErrorIs(t, err, errAmbiguousID)

	_, err = resolveSession(sessions, "ffff")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	_, err = resolveSession(sessions, "")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestSuggest(t *testing.T) {
	known := []string{"Budi Santoso", "Siti", "budiman"}

	assert.Equal(t, []string{"Budi Santoso", "budiman"}, suggest(known, "BUD"))
	assert.Equal(t, known, suggest(known, ""))
	assert.Empty(t, suggest(known, "zzz"))
}

func newFilterCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "list"}
	cmd.Flags().StringP("student", "s", "", "")
	cmd.Flags().StringP("topic", "t", "", "")
	cmd.Flags().String("from", "", "")
	cmd.Flags().String("to", "", "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestFilterFromFlags(t *testing.T) {
	filter, err := filterFromFlags(newFilterCommand(t))
	require.NoError(t, err)
	assert.True(t, filter.IsEmpty())

	filter, err = filterFromFlags(newFilterCommand(t, "-s", "budi", "--topic", "alg", "--from", "2024-01-01", "--to", "2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, "budi", filter.StudentNameContains)
	assert.Equal(t, "alg", filter.TopicContains)
	require.NotNil(t, filter.DateFrom)
	require.NotNil(t, filter.DateTo)
	assert.Equal(t, "2024-01-31", filter.DateTo.Format(model.DateLayout))

	_, err = filterFromFlags(newFilterCommand(t, "--from", "yesterday"))
	assert.ErrorContains(t, err, "--from")
}

func TestRenderSessions(t *testing.T) {
	var buf bytes.Buffer
	renderSessions(&buf, model.View{
		Sessions: testSessions()[:1],
		TotalFee: decimal.NewFromInt(165000),
	})

	out := buf.String()
	assert.Contains(t, out, "3f2a9c10")
	assert.NotContains(t, out, "3f2a9c10-aaaa")
	assert.Contains(t, out, "Budi")
	assert.Contains(t, out, "Rp50.000")
	assert.Contains(t, out, "Rp165.000")

	buf.Reset()
	renderSessions(&buf, model.View{Filter: model.Filter{StudentNameContains: "x"}})
	assert.Contains(t, buf.String(), "No sessions match the filter.")
	assert.Contains(t, buf.String(), `student~"x"`)
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, service.Summarize(testSessions()))

	out := buf.String()
	assert.Contains(t, out, "Rp165.000")
	assert.Contains(t, out, "4,5 jam")
	assert.Contains(t, out, "Andi, Budi, Siti")
}
