package mailer

// Config настройки SMTP
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // адрес отправителя, например "Rijschool <info@example.com>"
}

// Message письмо с HTML телом и текстовой альтернативой
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}
