package service

import (
	"context"
	"errors"
	"time"

	"product-chatbot-be/internal/config"
	"product-chatbot-be/internal/constant"
	"product-chatbot-be/internal/dto"
	"product-chatbot-be/internal/entity"
	"product-chatbot-be/internal/pkg/logger"
	"product-chatbot-be/pkg/llm"
	"product-chatbot-be/pkg/rag"
	"product-chatbot-be/pkg/rag/prompt"
	"product-chatbot-be/pkg/rag/retriever"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	chatbotModule = "CHATBOT"
	tracerName    = "product-chatbot-be/internal/service"
)

type IChatbotService interface {
	// Ask runs the question through retrieval and generation. Failures are
	// returned as *rag.PipelineError.
	Ask(ctx context.Context, question string) (string, error)

	// Answer is Ask with every failure turned into user-facing text.
	Answer(ctx context.Context, question string) dto.ChatReply
}

type chatbotService struct {
	retriever  *retriever.Lazy
	generator  llm.LLMProvider
	genOpts    []llm.Option
	promptName prompt.Name
	logger     logger.ILogger
	tracer     trace.Tracer
}

func NewChatbotService(
	retriever *retriever.Lazy,
	generator llm.LLMProvider,
	logger logger.ILogger,
	genOpts ...llm.Option,
) IChatbotService {
	return &chatbotService{
		retriever:  retriever,
		generator:  generator,
		genOpts:    genOpts,
		promptName: prompt.ProductBot,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

func (s *chatbotService) Ask(ctx context.Context, question string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "chatbot.ask")
	defer span.End()

	docs, err := s.retrieve(ctx, question)
	if err != nil {
		return "", failSpan(span, err)
	}
	if len(docs) == 0 {
		return "", rag.NewPipelineError(rag.FailureNoResults, rag.StageSearch, nil)
	}

	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}
	rendered, err := prompt.Render(s.promptName, prompt.JoinContext(contents), question)
	if err != nil {
		return "", failSpan(span, rag.NewPipelineError(rag.FailureConfiguration, rag.StagePrompt, err))
	}

	answer, err := s.generate(ctx, rendered)
	if err != nil {
		return "", failSpan(span, err)
	}
	return answer, nil
}

func (s *chatbotService) retrieve(ctx context.Context, question string) ([]*entity.ProductDocument, error) {
	ctx, span := s.tracer.Start(ctx, "retrieve")
	defer span.End()

	r, err := s.retriever.Get(ctx)
	if err != nil {
		return nil, failSpan(span, initFailure(err))
	}
	span.SetAttributes(attribute.Int("top_k", r.TopK()))

	docs, err := r.Invoke(ctx, question)
	if err != nil {
		return nil, failSpan(span, err)
	}
	span.SetAttributes(attribute.Int("documents", len(docs)))
	return docs, nil
}

func (s *chatbotService) generate(ctx context.Context, rendered string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "generate")
	defer span.End()

	out, err := s.generator.Generate(ctx, rendered, s.genOpts...)
	if err != nil {
		return "", failSpan(span, rag.NewPipelineError(rag.FailureProvider, rag.StageGenerate, err))
	}
	return out, nil
}

func (s *chatbotService) Answer(ctx context.Context, question string) dto.ChatReply {
	start := time.Now()

	answer, err := s.Ask(ctx, question)
	if err == nil {
		s.logger.Info(chatbotModule, "Question answered", map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return dto.ChatReply{Response: answer, Outcome: constant.OutcomeAnswered}
	}

	var pe *rag.PipelineError
	if !errors.As(err, &pe) {
		pe = rag.NewPipelineError(rag.FailureProvider, "", err)
	}

	if pe.Kind == rag.FailureNoResults {
		s.logger.Warn(chatbotModule, "No documents matched the question", nil)
		return dto.ChatReply{Response: constant.NoResultsMessage, Outcome: constant.OutcomeNoResults}
	}

	cause := error(pe)
	if pe.Err != nil {
		cause = pe.Err
	}
	s.logger.Error(chatbotModule, "Question pipeline failed", map[string]interface{}{
		"kind":  string(pe.Kind),
		"stage": string(pe.Stage),
		"error": cause.Error(),
	})
	return dto.ChatReply{
		Response: constant.TechnicalDifficultiesPrefix + cause.Error(),
		Outcome:  string(pe.Kind),
	}
}

// initFailure tags a retriever build failure. Missing credentials are a
// configuration problem; anything else came from a provider.
func initFailure(err error) error {
	var pe *rag.PipelineError
	if errors.As(err, &pe) {
		return err
	}
	var missing *config.MissingEnvError
	if errors.As(err, &missing) {
		return rag.NewPipelineError(rag.FailureConfiguration, rag.StageInit, err)
	}
	return rag.NewPipelineError(rag.FailureProvider, rag.StageInit, err)
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
