package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

const companyName = "Ladakh Trails"

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #2c6e8f; margin: 0;">Ladakh Trails</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 Ladakh Trails. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	// Read at send time: package init runs before godotenv loads the .env
	// file in main, so these must not be captured in package variables.
	emailFrom := os.Getenv("EMAIL_FROM")
	emailPassword := os.Getenv("EMAIL_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")

	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// SendNewBookingEmailToVendor notifies a vendor that one of their bikes
// has a new pending booking.
func SendNewBookingEmailToVendor(vendorEmail, bikeModel, touristName string) error {
	subject := "New Bike Booking - Ladakh Trails"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Booking Request</h1>
					<p>Hello,</p>
					<p>Your bike <strong>%s</strong> has been booked by <strong>%s</strong>.</p>
					<p>The booking will be confirmed once payment is completed.</p>
					<p>Best regards,<br>The Ladakh Trails Team</p>
				</div>`+emailFooter,
		bikeModel, touristName)

	return sendEmail([]string{vendorEmail}, subject, body)
}

// SendBookingConfirmedEmail notifies the tourist that payment went through.
func SendBookingConfirmedEmail(touristEmail, bikeModel string, totalPrice float64) error {
	subject := "Booking Confirmed - Ladakh Trails"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Confirmed</h1>
					<p>Hello,</p>
					<p>Your booking for <strong>%s</strong> is confirmed. Total: <strong>₹%.2f</strong>.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/bookings" style="background-color: #2c6e8f; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View Your Bookings</a>
					</div>
					<p>Ride safe,<br>The Ladakh Trails Team</p>
				</div>`+emailFooter,
		bikeModel, RoundCurrency(totalPrice), os.Getenv("BASE_URL"))

	return sendEmail([]string{touristEmail}, subject, body)
}

// SendPermitDecisionEmail notifies the tourist of a permit decision.
func SendPermitDecisionEmail(touristEmail, destination, status, reason string) error {
	subject := "Travel Permit Update - Ladakh Trails"

	reasonLine := ""
	if reason != "" {
		reasonLine = fmt.Sprintf("<p>Note: %s</p>", reason)
	}

	heading := status
	if len(heading) > 0 {
		heading = strings.ToUpper(heading[:1]) + heading[1:]
	}

	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Permit %s</h1>
					<p>Hello,</p>
					<p>Your travel permit for <strong>%s</strong> has been <strong>%s</strong>.</p>
					%s
					<p>Best regards,<br>The Ladakh Trails Team</p>
				</div>`+emailFooter,
		heading, destination, status, reasonLine)

	return sendEmail([]string{touristEmail}, subject, body)
}
