package messenger

import (
	"fmt"
	"strings"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

const dateLayout = "Mon 2 Jan 2006"

func buildBusinessMessage(inquiry domain.Inquiry, provider domain.Provider) string {
	sections := [][]string{}
	addSection := func(title, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		sections = append(sections, []string{"**" + title + "**", "> " + value})
	}

	addSection("Reference", inquiry.Reference)
	addSection("From", inquiry.From.Name)
	addSection("Email", inquiry.From.Email)
	addSection("Phone", inquiry.From.Phone)
	addSection("Requested slot", desiredSlot(inquiry))
	addSection("Message", inquiry.Message)

	var builder strings.Builder
	if inquiry.Type == domain.InquiryBooking {
		builder.WriteString(fmt.Sprintf("New booking request for %s\n", provider.Name))
	} else {
		builder.WriteString(fmt.Sprintf("New inquiry for %s\n", provider.Name))
	}
	for _, section := range sections {
		builder.WriteString(section[0])
		builder.WriteString("\n")
		builder.WriteString(section[1])
		builder.WriteString("\n")
	}
	return builder.String()
}

func buildDiscordMessage(adminBaseURL string, inquiry domain.Inquiry, provider domain.Provider) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**%s** sent a %s inquiry.\n", displayName(inquiry), inquiry.Type))
	builder.WriteString(fmt.Sprintf("- Provider: %s (%s)\n", provider.Name, provider.ID))
	if slot := desiredSlot(inquiry); slot != "" {
		builder.WriteString(fmt.Sprintf("- Slot: %s\n", slot))
	}
	builder.WriteString(fmt.Sprintf("- Reference: %s\n", inquiry.Reference))
	if inquiry.ID != "" && adminBaseURL != "" {
		builder.WriteString(fmt.Sprintf("[Open in admin](%s/%s)\n", adminBaseURL, inquiry.ID))
	}
	return builder.String()
}

func buildSlackMessage(adminBaseURL string, inquiry domain.Inquiry, provider domain.Provider) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(":warning: %s sent a %s inquiry.\n", displayName(inquiry), inquiry.Type))
	builder.WriteString(fmt.Sprintf("Provider: %s\n", provider.Name))
	if slot := desiredSlot(inquiry); slot != "" {
		builder.WriteString(fmt.Sprintf("Slot: %s\n", slot))
	}
	if inquiry.ID != "" && adminBaseURL != "" {
		builder.WriteString(fmt.Sprintf("Admin: %s/%s\n", adminBaseURL, inquiry.ID))
	}
	return builder.String()
}

func desiredSlot(inquiry domain.Inquiry) string {
	if inquiry.DesiredDate == nil {
		return ""
	}
	slot := inquiry.DesiredDate.Format(dateLayout)
	if inquiry.DesiredTime != "" {
		slot += " " + inquiry.DesiredTime
	}
	return slot
}

func displayName(inquiry domain.Inquiry) string {
	if name := strings.TrimSpace(inquiry.From.Name); name != "" {
		return name
	}
	return "Anonymous"
}
