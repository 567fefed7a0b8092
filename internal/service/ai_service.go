package service

import (
	"context"
	"encoding/json"
	"fmt"

	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/gemini"
	"dexboard/backend/pkg/logger"
)

// ChatClient is the upstream text completion service
type ChatClient interface {
	Configured() bool
	Chat(ctx context.Context, systemInstruction, message string, history []gemini.Message) (string, error)
}

const assistantInstruction = `คุณคือ AI Assistant สำหรับ DEX Trading Dashboard ชื่อ "DEX AI"
คุณเชี่ยวชาญด้าน:
- การวิเคราะห์พอร์ตการลงทุน Cryptocurrency
- การประเมินความเสี่ยง
- แนะนำกลยุทธ์การเทรด
- ช่วยเหลือเรื่อง Trading Bots (Grid Bot, DCA Bot, Arbitrage Bot)
- ให้ความรู้เกี่ยวกับ DeFi และ DEX

กฎในการตอบ:
1. ตอบเป็นภาษาไทยเป็นหลัก ยกเว้นศัพท์เทคนิค
2. ใช้ Markdown formatting เมื่อเหมาะสม
3. ให้ข้อมูลที่ถูกต้องและเป็นประโยชน์
4. เตือนเรื่องความเสี่ยงในการลงทุนเสมอ
5. ไม่แนะนำการลงทุนที่เฉพาะเจาะจง แต่ให้ข้อมูลเพื่อการตัดสินใจ
6. ตอบกระชับ ชัดเจน`

const portfolioPrompt = `วิเคราะห์พอร์ตการลงทุนนี้และให้คำแนะนำ:
%s

กรุณาวิเคราะห์:
1. การกระจายความเสี่ยง
2. สัดส่วนสินทรัพย์
3. คำแนะนำในการปรับปรุง
4. ระดับความเสี่ยงโดยรวม`

const botPrompt = `วิเคราะห์การตั้งค่า Trading Bot นี้และแนะนำการปรับปรุง:
%s

กรุณาแนะนำ:
1. การปรับ parameters ให้เหมาะสม
2. ความเสี่ยงของการตั้งค่าปัจจุบัน
3. วิธีเพิ่มประสิทธิภาพ
4. สิ่งที่ควรระวัง`

// AIService wraps the chat assistant. Any upstream failure is reported as 503 so the
// client can fall back to its canned answers.
type AIService struct {
	client ChatClient
	log    *logger.Logger
}

// NewAIService creates a new AI service
func NewAIService(client ChatClient, log *logger.Logger) *AIService {
	return &AIService{
		client: client,
		log:    log,
	}
}

// Chat answers message in the context of history
func (s *AIService) Chat(ctx context.Context, message string, history []gemini.Message) (string, error) {
	return s.ask(ctx, message, history)
}

// AnalyzePortfolio asks for a risk and allocation review of an arbitrary portfolio document
func (s *AIService) AnalyzePortfolio(ctx context.Context, portfolio json.RawMessage) (string, error) {
	return s.ask(ctx, fmt.Sprintf(portfolioPrompt, indent(portfolio)), nil)
}

// OptimizeBot asks for tuning suggestions of an arbitrary bot document
func (s *AIService) OptimizeBot(ctx context.Context, bot json.RawMessage) (string, error) {
	return s.ask(ctx, fmt.Sprintf(botPrompt, indent(bot)), nil)
}

func (s *AIService) ask(ctx context.Context, message string, history []gemini.Message) (string, error) {
	if !s.client.Configured() {
		return "", util.ErrServiceUnavailable(util.ErrCodeAIUnavailable,
			"AI service not configured. Please add GEMINI_API_KEY to environment.", nil)
	}

	text, err := s.client.Chat(ctx, assistantInstruction, message, history)
	if err != nil {
		s.log.Error("AI chat failed", err)
		return "", util.ErrServiceUnavailable(util.ErrCodeAIUnavailable, "Failed to get AI response", err)
	}
	return text, nil
}

// indent pretty prints a JSON document, falling back to "{}" for an empty or invalid one
func indent(doc json.RawMessage) string {
	var v interface{}
	if len(doc) == 0 || json.Unmarshal(doc, &v) != nil || v == nil {
		return "{}"
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}
