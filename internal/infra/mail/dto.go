package mail

type EnrollmentEmailData struct {
	Name       string
	CourseName string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
