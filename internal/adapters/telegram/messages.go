package telegram

import (
	"fmt"

	"github.com/arashpr/cheatbot/internal/core/domain"
)

// User-facing texts and the persistent reply keyboard.

const (
	buttonStart  = "شروع 📄"
	buttonForget = "فراموشی 🗑"
)

var mainKeyboard = ReplyKeyboardMarkup{
	Keyboard:       [][]string{{buttonStart, buttonForget}},
	ResizeKeyboard: true,
}

var (
	msgGreeting = "👋 سلام!\n\n" +
		"📄 یک فایل (PDF، Word، عکس یا TXT) ارسال کن\n" +
		"❓ بعدش سؤال بپرس تا جواب بدم\n\n" +
		"🗑 با «فراموشی» فایل قبلی پاک می‌شه"

	msgFileTooLarge = fmt.Sprintf("❌ فایل خیلی بزرگه. (حداکثر %dMB)", domain.MaxFileMB)

	msgExtracting = "⏳ در حال استخراج متن..."
	msgRunningOCR = "⏳ در حال OCR عکس..."

	msgNoUsableText      = "❌ متن قابل‌استفاده‌ای استخراج نشد."
	msgNoUsableTextPhoto = "❌ متن قابل‌استفاده‌ای از عکس استخراج نشد."

	msgExtracted = "✅ متن استخراج شد.\n❓ حالا سؤال خودت رو بپرس."

	msgForgotten = "✅ فایل قبلی فراموش شد.\n📄 فایل جدید ارسال کن."
	msgSendFile  = "📄 لطفاً فایل را ارسال کن."

	msgPreparing    = "🤖 دارم جواب رو آماده می‌کنم..."
	msgNoAnswer     = "❌ پاسخی تولید نشد."
	msgBackendError = "❌ خطا در اتصال/پاسخ‌دهی Gemini. لطفاً دوباره امتحان کن."
)
