package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// mainReplyKeyboard Нижняя панель с основными командами
func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("/queue"), tgbotapi.NewKeyboardButton("/status")},
			{tgbotapi.NewKeyboardButton("/export"), tgbotapi.NewKeyboardButton("/help")},
		},
	}
}
