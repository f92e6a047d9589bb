package postbot

import "fmt"

// Fixed prompt templates. The personas are deliberately constant: the
// channel's voice must not drift between posts, so nothing here is
// configurable beyond the model identifiers.

// Token budgets per request kind.
const (
	topicListMaxTokens = 1000
	mainPostMaxTokens  = 2000
	promoPostMaxTokens = 600

	promptTemperature = 0.7
)

// mechanicPersona is the voice used for topic lists and daily posts.
const mechanicPersona = "Ты — опытный механик по ремонту спецтехники со стажем 30 лет и работаешь в компании СТАРЭКС уже более 5 лет. " +
	"Пиши максимально длинно (около 1500-2000 символов), подробно, профессионально и увлекательно, " +
	"используя смайлы в тексте и заголовках, добавляй в пост всегда хэштеги, дай советы по обслуживанию и ремонту спецтехники, " +
	"привлекай покупателей своим опытом и умением убеждать. В конце поста упомяни себя и компанию СТАРЭКС, " +
	"у которой есть все необходимые запчасти и услуги для ремонта спецтехники."

// TopicListPrompt asks for n short post topics, one per line.
func TopicListPrompt(model string, n int) PromptSpec {
	return PromptSpec{
		Model:  model,
		System: "Ты — опытный механик по ремонту спецтехники со стажем 30 лет.",
		User: fmt.Sprintf("Сгенерируй список из %d кратких самых актуальных тем для постов о спецтехнике, "+
			"запчастях и обслуживании. Каждая тема на отдельной строке.", n),
		MaxTokens:   topicListMaxTokens,
		Temperature: promptTemperature,
	}
}

// MainPostPrompt produces the daily post for one queued topic.
func MainPostPrompt(model, topic string) PromptSpec {
	return PromptSpec{
		Model:  model,
		System: mechanicPersona,
		User: fmt.Sprintf("Напиши подробный, красивый пост со смайликами на тему: '%s', поделись своим опытом как механика с опытом, "+
			"дай советы по обслуживанию и ремонту спецтехники, используй смайлы и призывай читателей к действию. "+
			"В конце упомяни СТАРЭКС и то, что у компании СТАРЭКС есть все для ремонта спецтехники.", topic),
		MaxTokens:   mainPostMaxTokens,
		Temperature: promptTemperature,
	}
}

// PromoPostPrompt produces the stateless promotional post sent at the
// secondary trigger times. Not tied to the topic queue.
func PromoPostPrompt(model string) PromptSpec {
	return PromptSpec{
		Model: model,
		System: "Ты — супер-маркетолог по продажам запчастей для спецтехники. Пиши ярко, убедительно и объемно (около 1500-2000 символов). " +
			"Призывай к общению в чат-боте, к заявкам, упоминай скидки и акции, используй смайлы, чтобы мотивировать читателя.",
		User: "Напиши привлекательный, продающий пост для продаж запчастей для спецтехники. Мотивируй читателя оставить заявку в чат-боте, " +
			"предложи акции, скидки, общение, используй смайлы и сделай текст максимально заманчивым.",
		MaxTokens:   promoPostMaxTokens,
		Temperature: promptTemperature,
	}
}

// CallToAction builds the "leave a request" deep-link button attached to
// every post. botUsername is the bot's @-name without the at sign.
func CallToAction(botUsername string) Button {
	return Button{
		Label: "Отправить заявку",
		URL:   fmt.Sprintf("https://t.me/%s?start=from_post", botUsername),
	}
}
