package dialog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

func TestChunkProjectList(t *testing.T) {
	t.Run("empty catalogue yields no messages", func(t *testing.T) {
		assert.Empty(t, chunkProjectList(nil))
	})

	t.Run("small catalogue fits one message", func(t *testing.T) {
		chunks := chunkProjectList([]domain.Project{
			{Number: "1", Name: "Первый"},
			{Number: "2", Name: "Второй"},
		})
		require.Len(t, chunks, 1)
		assert.Equal(t, "1 - \"Первый\"\n2 - \"Второй\"\n", chunks[0])
	})

	t.Run("long catalogue splits without breaking lines", func(t *testing.T) {
		name := strings.Repeat("п", 200)
		var projects []domain.Project
		for i := 0; i < 60; i++ {
			projects = append(projects, domain.Project{
				Number: fmt.Sprintf("%d", i+1),
				Name:   name,
			})
		}

		chunks := chunkProjectList(projects)
		require.Greater(t, len(chunks), 1)

		total := 0
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), maxMessageLength)
			// chunks end exactly on a line boundary
			assert.True(t, strings.HasSuffix(chunk, "\n"))
			total += strings.Count(chunk, "\n")
		}
		assert.Equal(t, len(projects), total)
	})
}
