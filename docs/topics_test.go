package docs

import (
	"bufio"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics extracts the topics listed as "* name: description" in the readme.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	readme, err := GetTopic(Readme)
	require.NoError(t, err)

	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	var topics []string
	scanner := bufio.NewScanner(strings.NewReader(readme))
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	require.NoError(t, scanner.Err())
	return topics
}

// TestTopics checks that the readme and the embedded files list the same topics.
func TestTopics(t *testing.T) {
	all, err := GetAllTopics()
	require.NoError(t, err)
	assert.ElementsMatch(t, all, readmeTopics(t))
	assert.NotContains(t, all, Readme)
}

// TestHeadings checks that every topic opens with a level 1 heading.
func TestHeadings(t *testing.T) {
	all, err := GetAllTopics()
	require.NoError(t, err)
	for _, topic := range append(all, Readme) {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			require.NoError(t, err)
			root := goldmark.DefaultParser().Parse(text.NewReader([]byte(content)))
			h, ok := root.FirstChild().(*ast.Heading)
			require.True(t, ok, "first block is %T", root.FirstChild())
			assert.Equal(t, 1, h.Level)
		})
	}
}

func TestGetTopics(t *testing.T) {
	_, err := GetTopic("unknown")
	assert.Error(t, err)

	both, err := GetTopics("payloads", "server")
	require.NoError(t, err)
	assert.Contains(t, both, "# Payloads")
	assert.Contains(t, both, "# Server")
	assert.Less(t, strings.Index(both, "# Payloads"), strings.Index(both, "# Server"))

	every, err := GetTopic("*")
	require.NoError(t, err)
	assert.Contains(t, every, "# Configuration")
	assert.NotContains(t, every, "# wdash")
}
