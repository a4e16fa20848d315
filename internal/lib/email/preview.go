package email

// PreviewData contains sample template data for local preview/testing.
var PreviewData = map[Template]any{
	TemplateContactNotification: ContactNotificationData{
		Name:       "山田 太郎",
		Email:      "taro@example.com",
		Company:    "Example株式会社",
		Subject:    "サービスについて",
		Message:    "料金プランについて教えてください。\nよろしくお願いします。",
		ReceivedAt: "2025/04/01 10:30",
	},
}

// Preview renders a template with its PreviewData.
func Preview(name Template) (html, text string, err error) {
	return render(name, PreviewData[name])
}
