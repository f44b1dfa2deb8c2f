package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// escapeMarkdown экранирует _ * ` [ для ParseMode=Markdown.
func escapeMarkdown(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

const (
	textProcessing   = "I'm processing your request. This may take a few minutes depending on the video length..."
	textMonthlyLimit = "You've reached your monthly conversion limit. Please upgrade your subscription to continue."
	textEmptyQueue   = "You don't have any conversions in the queue."
	textUnknownCmd   = "I don't know this command. Type /help to see all available commands."
)

func welcomeText(name, botUsername string) string {
	return fmt.Sprintf("Welcome to Telegisto, %s! 🎧\n\n", name) +
		"I can convert videos from YouTube, Twitch, Instagram, and Facebook into audio format, " +
		"so you can listen to them like podcasts without using excessive data.\n\n" +
		"Simply send me a video link, and I'll convert it to audio for you.\n\n" +
		"Type /help to see all available commands.\n\n" +
		fmt.Sprintf("You can also share me with your friends: @%s", botUsername)
}

func helpText(botUsername string) string {
	return "*Telegisto Commands:*\n\n" +
		"/start - Start the bot\n" +
		"/help - Show this help message\n" +
		"/status - Check your subscription status\n" +
		"/queue - Check your conversion queue\n" +
		"/export - Download your queue as an Excel file\n" +
		"/about - Learn more about Telegisto\n\n" +
		"*How to use:*\n" +
		"Simply send a video link from YouTube, Twitch, Instagram, or Facebook, and I'll convert it to audio.\n\n" +
		"*Pro Tip:*\n" +
		"If you send a YouTube link with a timestamp (e.g., ?t=120s), I'll start the conversion from that point.\n\n" +
		fmt.Sprintf("Share me with your friends: @%s", escapeMarkdown(botUsername))
}

func aboutText(botUsername string) string {
	return "*About Telegisto*\n\n" +
		"Telegisto helps you save data and battery by converting videos to audio format.\n\n" +
		"*Benefits:*\n" +
		"• Save on data costs\n" +
		"• Listen offline without premium subscriptions\n" +
		"• Enjoy video content as podcasts\n" +
		"• Save battery life\n" +
		"• Listen in the background\n\n" +
		"Visit our website at [telegisto.com](https://telegisto.com) to learn more and manage your subscription.\n\n" +
		fmt.Sprintf("Share me with your friends: @%s", escapeMarkdown(botUsername))
}

func cooldownText(minutes int) string {
	return fmt.Sprintf("You need to wait %d minutes before your next conversion. "+
		"Upgrade to a paid plan to remove this restriction!", minutes)
}

func queuedAtText(position int) string {
	return fmt.Sprintf("Your video has been added to the queue at position %d. "+
		"I'll send you the audio once it's ready!", position)
}
