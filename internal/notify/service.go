package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/medconnect/hospital-booking/pkg/logging"
)

// Service sends the patient-facing appointment emails. Every method is a
// best-effort call: callers treat failures as soft and decide themselves
// how to surface them.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if email == nil {
		email = NewStubEmailSender(logger)
	}
	return &Service{email: email, logger: logger}
}

// SendRequestReceived tells the patient their request was submitted.
func (s *Service) SendRequestReceived(ctx context.Context, to, patientName, appointmentID string) error {
	msg := EmailMessage{
		To:      to,
		ToName:  patientName,
		Subject: "Appointment Request Received - Rwanda Medical Connect",
		Body: fmt.Sprintf(
			"Dear %s,\n\nYour appointment request has been successfully submitted to Rwanda Medical Connect. "+
				"Your doctor will review your request shortly and you'll receive another email once the appointment is confirmed.\n\n"+
				"Appointment Reference: %s\n",
			patientName, appointmentID),
		HTML: requestReceivedHTML(patientName, appointmentID),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: request-received email: %w", err)
	}
	return nil
}

// SendAppointmentConfirmed tells the patient the schedule and join link.
func (s *Service) SendAppointmentConfirmed(ctx context.Context, to, patientName, doctorName string, scheduledTime time.Time, joinLink string) error {
	when := scheduledTime.Format("Monday, January 2, 2006 at 3:04 PM")
	msg := EmailMessage{
		To:      to,
		ToName:  patientName,
		Subject: "Appointment Confirmed - Rwanda Medical Connect",
		Body: fmt.Sprintf(
			"Dear %s,\n\nGreat news! Your appointment has been confirmed.\n\n"+
				"Doctor: %s\nDate & Time: %s\nType: Virtual Consultation\n\n"+
				"Join your video consultation: %s\n\n"+
				"Please join the meeting 5 minutes before your scheduled time.\n",
			patientName, doctorName, when, joinLink),
		HTML: confirmedHTML(patientName, doctorName, when, joinLink),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: confirmation email: %w", err)
	}
	return nil
}

// SendAppointmentDeclined tells the patient their request was not accepted.
func (s *Service) SendAppointmentDeclined(ctx context.Context, to, patientName, doctorName string) error {
	msg := EmailMessage{
		To:      to,
		ToName:  patientName,
		Subject: "Appointment Request Update - Rwanda Medical Connect",
		Body: fmt.Sprintf(
			"Dear %s,\n\nUnfortunately %s is unable to take your appointment request at this time. "+
				"Please submit a new request with another doctor from our directory.\n",
			patientName, doctorName),
		HTML: declinedHTML(patientName, doctorName),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: declined email: %w", err)
	}
	return nil
}

func requestReceivedHTML(patientName, appointmentID string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2c3e50;">Appointment Request Received</h2>
    <p>Dear %s,</p>
    <p>Your appointment request has been successfully submitted to Rwanda Medical Connect.</p>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="color: #27ae60;">What's Next?</h3>
        <ul>
            <li>Your doctor will review your request shortly</li>
            <li>You'll receive another email once the appointment is confirmed</li>
            <li>The confirmation will include your scheduled time and video call link</li>
        </ul>
    </div>
    <p style="color: #7f8c8d;">Appointment Reference: %s</p>
    <p>Thank you for choosing Rwanda Medical Connect!</p>
    <hr style="border: none; height: 1px; background-color: #e1e8ed; margin: 20px 0;">
    <p style="font-size: 12px; color: #95a5a6;">This is an automated message. Please do not reply to this email.</p>
</div>`, patientName, appointmentID)
}

func confirmedHTML(patientName, doctorName, when, joinLink string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #27ae60;">Appointment Confirmed!</h2>
    <p>Dear %s,</p>
    <p>Great news! Your appointment has been confirmed.</p>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="color: #2c3e50;">Appointment Details</h3>
        <ul style="list-style: none; padding: 0;">
            <li style="margin: 10px 0;"><strong>Doctor:</strong> %s</li>
            <li style="margin: 10px 0;"><strong>Date &amp; Time:</strong> %s</li>
            <li style="margin: 10px 0;"><strong>Type:</strong> Virtual Consultation</li>
        </ul>
    </div>
    <div style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #3498db; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Join Video Consultation</a>
    </div>
    <p><strong>Important Notes:</strong></p>
    <ul>
        <li>Please join the meeting 5 minutes before your scheduled time</li>
        <li>Ensure you have a stable internet connection</li>
        <li>Have your ID ready for verification</li>
    </ul>
    <p>We look forward to serving you!</p>
    <hr style="border: none; height: 1px; background-color: #e1e8ed; margin: 20px 0;">
    <p style="font-size: 12px; color: #95a5a6;">For any questions, please contact us. This is an automated message.</p>
</div>`, patientName, doctorName, when, joinLink)
}

func declinedHTML(patientName, doctorName string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #c0392b;">Appointment Request Update</h2>
    <p>Dear %s,</p>
    <p>Unfortunately %s is unable to take your appointment request at this time.</p>
    <p>Please submit a new request with another doctor from our directory.</p>
    <hr style="border: none; height: 1px; background-color: #e1e8ed; margin: 20px 0;">
    <p style="font-size: 12px; color: #95a5a6;">This is an automated message. Please do not reply to this email.</p>
</div>`, patientName, doctorName)
}
