package domain

import (
	"fmt"
	"strings"
	"time"
)

const notAvailable = "N/A"

const (
	ValidityExpiringSoon = "Expire bientôt!"
	ValidityValid        = "Valide"
)

// BadgeDetail is a single badge together with its status for the detail view.
type BadgeDetail struct {
	Badge    Badge       `json:"badge"`
	Status   BadgeStatus `json:"status"`
	Validity string      `json:"validity,omitempty"`
}

// NewBadgeDetail classifies b under policy. Validity is set only when the badge has a
// deactivation date, and uses the detail view's own threshold: anything with at most
// ExpiringSoonDays left, including already expired badges, is flagged.
func NewBadgeDetail(b Badge, now time.Time, policy StatusPolicy) BadgeDetail {
	detail := BadgeDetail{
		Badge:  b,
		Status: ClassifyBadge(b, now, policy),
	}
	if detail.Status.DaysLeft != nil {
		if *detail.Status.DaysLeft <= ExpiringSoonDays {
			detail.Validity = ValidityExpiringSoon
		} else {
			detail.Validity = ValidityValid
		}
	}
	return detail
}

// FormatDetail renders a detail as aligned "label value" lines, with N/A for missing values.
func FormatDetail(d BadgeDetail) string {
	status := "Inactif"
	if d.Status.Active {
		status = "Actif"
	}
	vip := "Non"
	if d.Badge.VIP {
		vip = "Oui"
	}

	lines := [][2]string{
		{"Nom complet:", d.Badge.DisplayName()},
		{"ID:", d.Badge.ExternalID},
		{"Numéro interne:", d.Badge.InternalNumber},
		{"Adresse:", d.Badge.Address},
		{"Rôles:", d.Badge.Roles},
		{"Statut du badge:", status},
		{"VIP:", vip},
		{"Niveau d'émission:", d.Badge.IssueLevel},
		{"Émis le:", FormatDateTime(d.Badge.IssueDate)},
		{"Activé le:", FormatDateTime(d.Badge.ActivationDate)},
		{"Expire le:", FormatDateTime(d.Badge.DeactivationDate)},
	}
	if d.Status.DaysLeft != nil {
		lines = append(lines, [2]string{
			"Jours restants:", fmt.Sprintf("%d jours (%s)", *d.Status.DaysLeft, d.Validity),
		})
	}

	var sb strings.Builder
	for _, l := range lines {
		value := l[1]
		if value == "" {
			value = notAvailable
		}
		_, _ = fmt.Fprintf(&sb, "%-20s %s\n", l[0], value)
	}
	return sb.String()
}

// FormatDate renders t as dd/mm/yyyy in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format("02/01/2006")
}

// FormatDateTime renders t as dd/mm/yyyy hh:mm in UTC, or N/A when t is nil.
func FormatDateTime(t *time.Time) string {
	if t == nil {
		return notAvailable
	}
	return t.UTC().Format("02/01/2006 15:04")
}
