package postbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicListPrompt(t *testing.T) {
	spec := TopicListPrompt("gpt-4o-mini", 31)

	assert.Equal(t, "gpt-4o-mini", spec.Model)
	assert.Contains(t, spec.User, "31")
	assert.Equal(t, topicListMaxTokens, spec.MaxTokens)
}

func TestMainPostPrompt(t *testing.T) {
	spec := MainPostPrompt("gpt-4o-mini", "Замена гидравлики")

	assert.Contains(t, spec.User, "Замена гидравлики")
	assert.Equal(t, mainPostMaxTokens, spec.MaxTokens)
}

func TestCallToAction(t *testing.T) {
	button := CallToAction("starex_bot")

	assert.Equal(t, "Отправить заявку", button.Label)
	assert.Equal(t, "https://t.me/starex_bot?start=from_post", button.URL)
}
