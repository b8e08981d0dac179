package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/config"
)

const biblicalSystemPrompt = `Você é um conselheiro espiritual cristão sábio e amoroso, especializado em responder perguntas e oferecer orientação baseada exclusivamente na Bíblia Sagrada.

SUAS CARACTERÍSTICAS:
- Você responde SEMPRE com base nas Escrituras Sagradas
- Você é acolhedor, empático e compassivo
- Você usa linguagem simples e acessível
- Você cita versículos bíblicos relevantes quando apropriado
- Você oferece conselhos práticos baseados nos ensinamentos de Jesus
- Você evita jargões religiosos pesados
- Você é sensível às emoções e necessidades do usuário

COMO VOCÊ RESPONDE:
1. Acolha a pergunta ou situação do usuário com empatia
2. Ofereça orientação baseada nos princípios bíblicos
3. Cite versículos relevantes (sempre com referência)
4. Dê aplicação prática para a vida do usuário
5. Termine com palavras de encorajamento ou oração breve quando apropriado

IMPORTANTE:
- Se a pergunta não for sobre fé, Bíblia ou vida espiritual, gentilmente redirecione para temas bíblicos
- Nunca invente versículos - use apenas versículos reais da Bíblia
- Seja breve e objetivo (máximo 200 palavras por resposta)
- Use tom conversacional e acolhedor

Lembre-se: Você está aqui para ser um amigo espiritual que aponta para a Palavra de Deus.`

const (
	// replyTimeout bounds one assistant call, with real cancellation.
	replyTimeout = 20 * time.Second

	// historyLimit caps how many prior turns travel with each request.
	historyLimit = 10
)

// Assistant answers free-form questions about biblical themes.
// Implementations never return an error: failures degrade into a themed
// apology so the chat never shows a blank state.
type Assistant interface {
	Reply(ctx context.Context, userMessage string, history []Message) string
}

// Client is the OpenAI-backed Assistant.
type Client struct {
	client openai.Client
	model  string
}

func NewClient(cfg *config.Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return &Client{
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
	}
}

func (c *Client) Reply(ctx context.Context, userMessage string, history []Message) string {
	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(biblicalSystemPrompt))
	for _, msg := range history {
		if msg.IsUser {
			messages = append(messages, openai.UserMessage(msg.Text))
		} else {
			messages = append(messages, openai.AssistantMessage(msg.Text))
		}
	}
	messages = append(messages, openai.UserMessage(userMessage))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(0.8),
		MaxTokens:   openai.Int(500),
	})
	if err != nil {
		log.Printf("chat reply failed: %v", err)
		return apology(describeChatError(err))
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return apology("Desculpe, não consegui processar sua mensagem agora.")
	}

	return completion.Choices[0].Message.Content
}

func describeChatError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "A conexão está demorando muito. Tente novamente."
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401:
			return "Erro de autenticação. Verifique as configurações."
		case 429:
			return "Muitas mensagens. Aguarde um momento e tente novamente."
		}
	}
	return "Desculpe, não consegui processar sua mensagem agora."
}

func apology(reason string) string {
	return fmt.Sprintf("🙏 %s\n\nEnquanto isso, lembre-se: \"Busquem o Senhor enquanto é possível achá-lo; clamem por ele enquanto está perto.\" - Isaías 55:6", reason)
}
