package openai

import (
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	postbot "github.com/zioncoderone/post-bot"
)

func TestTranslateError_RateLimit(t *testing.T) {
	err := translateError(&openai.APIError{
		HTTPStatusCode: http.StatusTooManyRequests,
		Message:        "Rate limit reached",
	})

	assert.True(t, postbot.IsRateLimited(err))
}

func TestTranslateError_OtherFailure(t *testing.T) {
	err := translateError(&openai.APIError{
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "server error",
	})

	assert.False(t, postbot.IsRateLimited(err))
	var pbErr *postbot.Error
	assert.ErrorAs(t, err, &pbErr)
	assert.Equal(t, postbot.ErrCodeGeneration, pbErr.Code)
}
