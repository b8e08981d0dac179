package devotional

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/config"
)

// systemInstruction is the canonical writer persona. The service answers in
// strict JSON so the response can be decoded straight into DevotionalContent.
const systemInstruction = `
Você é um escritor espiritual cristão, sensível, acolhedor e profundo.
Seu papel é criar devocionais diários que tragam conforto, esperança,
direcionamento espiritual e paz interior.
Você escreve de forma simples, emocional e acessível.
Evite linguagem religiosa pesada ou teológica.
Use um tom humano, empático e acolhedor.
Sempre escreva como se estivesse conversando com alguém
que está cansado emocionalmente, buscando conforto e direção.

ESTRUTURA OBRIGATÓRIA (Responda estritamente em JSON):
{
  "title": "Frase curta emocional",
  "verse": "Livro + capítulo (ex: Salmos 23:1)",
  "reflection": "Escreva de 4 a 6 parágrafos BEM DESENVOLVIDOS e extensos. O texto deve ser substancial, profundo e envolvente. Evite superficialidade. Conecte o sentimento com a fé de forma detalhada e carinhosa.",
  "application": "Uma atitude prática para o dia.",
  "prayer": "Uma oração COMPLETA, EXTENSA e emocionante. Não faça orações curtas. Fale com Deus com intimidade, em pelo menos 3 ou 4 frases conectadas."
}

Instruções Adicionais:
"Evite repetir temas, palavras e estruturas já utilizadas. Busque sempre uma nova abordagem emocional."
`

// generateTimeout bounds one generation call. The context carries the
// deadline, so losing the race cancels the underlying request too.
const generateTimeout = 15 * time.Second

// Generator produces devotional content. Implementations never return an
// error: any failure degrades into fallback content the reader can retry.
type Generator interface {
	Generate(ctx context.Context, topic string) DevotionalContent
}

// OpenAIGenerator calls the OpenAI chat-completions API with the fixed
// writer persona.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

func NewOpenAIGenerator(cfg *config.Config) *OpenAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return &OpenAIGenerator{
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, topic string) DevotionalContent {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	userPrompt := "Gere o devocional do dia de hoje. Algo inspirador para começar ou terminar o dia."
	if topic != "" {
		userPrompt = fmt.Sprintf("Gere um devocional específico sobre o tema: %s.", topic)
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(userPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		log.Printf("devotional generation failed: %v", err)
		return FallbackContent(describeGenerationError(err))
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return FallbackContent("Resposta vazia da IA.")
	}

	var content DevotionalContent
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &content); err != nil {
		log.Printf("devotional generation returned malformed JSON: %v", err)
		return FallbackContent("A IA respondeu em um formato inesperado.")
	}
	if !content.Complete() {
		return FallbackContent("Resposta incompleta da IA.")
	}

	content.IsFallback = false
	return content
}

func describeGenerationError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout: A conexão demorou muito."
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 401:
			return "Chave de API inválida."
		case 429:
			return "Muitos acessos. Tente mais tarde."
		case 500:
			return "Erro no servidor da IA."
		}
	}
	return "Erro de conexão."
}

// FallbackContent is the fixed placeholder shown when generation fails. It is
// never persisted anywhere, so the next load is a full retry.
func FallbackContent(reason string) DevotionalContent {
	return DevotionalContent{
		Title: "Deus está no Controle",
		Verse: "Salmos 46:1",
		Reflection: fmt.Sprintf("(Não conseguimos gerar o devocional novo agora devido a: %s Clique em 'Tentar Novamente' acima).\n\n"+
			"Enquanto isso, lembre-se: Deus é o nosso refúgio e fortaleza, socorro bem presente na angústia. "+
			"Mesmo quando a tecnologia falha ou o dia parece confuso, a paz de Deus permanece acessível a nós "+
			"através de uma simples oração. Respire fundo e confie.", reason),
		Application: "Tente atualizar a página ou clicar no botão de recarregar.",
		Prayer:      "Senhor, acalma meu coração e renova minhas forças. Amém.",
		IsFallback:  true,
	}
}
