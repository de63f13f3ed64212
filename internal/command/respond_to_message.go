package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jbeshir/badge-desk/internal/datasources"
	"github.com/jbeshir/badge-desk/internal/domain"
)

// Intent is the classified purpose of a chat message.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentFullReport    Intent = "full_report"
	IntentExpiredList   Intent = "expired_list"
	IntentExpiringList  Intent = "expiring_list"
	IntentVIPList       Intent = "vip_list"
	IntentStatusSummary Intent = "status_summary"
	IntentFallback      Intent = "fallback"
	IntentUnavailable   Intent = "unavailable"
	IntentError         Intent = "error"
)

// Fixed replies. The presentation layer renders replies verbatim.
const (
	ReplyRosterNotLoaded = "Erreur : les données ne sont pas chargées. Veuillez importer un fichier."
	ReplyNoExpiryData    = "Les données ne contiennent pas les dates d'expiration."
	ReplyNoneExpired     = "Aucun badge n'est expiré pour le moment."
	ReplyNoneExpiring    = "Aucun badge n'expire ce mois."
	ReplyVIPAbsent       = "La colonne VIP est absente des données."
	ReplyFallback        = "Je ne comprends pas votre demande. Essayez par exemple :\n" +
		"- 'Liste des badges expirés'\n" +
		"- 'Badges expirant ce mois'\n" +
		"- 'Nombre de VIP'\n" +
		"- 'Statistiques complètes'"
	replyErrorFormat = "Désolé, une erreur est survenue : %v"
)

const (
	maxListedBadges = 20
	maxListedVIPs   = 5
)

// SuggestedQuestions are example messages offered to users, one per report.
var SuggestedQuestions = []string{
	"Statut des badges",
	"Liste des badges expirés",
	"Badges expirant ce mois",
	"Nombre de VIP",
	"Statistiques complètes",
}

type RespondToMessageRequest struct {
	Message string
	// Now is the reference instant; the zero value means the current time.
	Now time.Time
}

type RespondToMessageResponse struct {
	Reply  string
	Intent Intent
}

// RespondToMessage answers a chat message about the current roster.
type RespondToMessage struct {
	Roster datasources.RosterGetter
	Now    func() time.Time
}

func NewRespondToMessage(roster datasources.RosterGetter) *RespondToMessage {
	return &RespondToMessage{Roster: roster, Now: time.Now}
}

// Execute never returns an error: every failure becomes a reply.
func (c *RespondToMessage) Execute(ctx context.Context, req RespondToMessageRequest) (RespondToMessageResponse, error) {
	now := req.Now
	if now.IsZero() {
		now = c.Now()
	}

	res := Respond(c.Roster.Roster(), req.Message, now)
	if res.Intent == IntentError {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "chat reply construction failed", "reply", res.Reply)
	}
	return res, nil
}

// intent pairs trigger phrases with the report they select. Triggers are matched as
// substrings of the lowercased, trimmed message.
type intent struct {
	name     Intent
	triggers []string
	respond  func(rc *replyContext) string
}

// intents are evaluated in order; the first match wins.
var intents = []intent{
	{name: IntentGreeting, triggers: []string{"bonjour", "salut"}, respond: replyGreeting},
	{name: IntentFullReport, triggers: []string{"statistiques", "complet"}, respond: replyFullReport},
	{name: IntentExpiredList, triggers: []string{"liste des badges expirés"}, respond: replyExpiredList},
	{name: IntentExpiringList, triggers: []string{"badge expirant ce mois", "badges expirant ce mois"},
		respond: replyExpiringList},
	{name: IntentVIPList, triggers: []string{"vip"}, respond: replyVIPList},
	{name: IntentStatusSummary, triggers: []string{"statut"}, respond: replyStatusSummary},
}

// ClassifyMessage returns the intent selected by message.
func ClassifyMessage(message string) Intent {
	if in, ok := matchIntent(message); ok {
		return in.name
	}
	return IntentFallback
}

func matchIntent(message string) (intent, bool) {
	message = strings.ToLower(strings.TrimSpace(message))
	for _, in := range intents {
		for _, trigger := range in.triggers {
			if strings.Contains(message, trigger) {
				return in, true
			}
		}
	}
	return intent{}, false
}

// Respond builds the reply to message for roster at now. It never panics; unexpected
// failures are reported as a single apologetic line.
func Respond(roster *domain.Roster, message string, now time.Time) (res RespondToMessageResponse) {
	defer func() {
		if r := recover(); r != nil {
			res = RespondToMessageResponse{
				Reply:  fmt.Sprintf(replyErrorFormat, r),
				Intent: IntentError,
			}
		}
	}()

	if roster == nil {
		return RespondToMessageResponse{Reply: ReplyRosterNotLoaded, Intent: IntentUnavailable}
	}

	in, ok := matchIntent(message)
	if !ok {
		return RespondToMessageResponse{Reply: ReplyFallback, Intent: IntentFallback}
	}

	return RespondToMessageResponse{
		Reply:  in.respond(newReplyContext(roster, now)),
		Intent: in.name,
	}
}

// replyContext holds the roster and per-badge statuses shared by all replies.
type replyContext struct {
	roster    *domain.Roster
	detail    []domain.BadgeStatus
	aggregate []domain.BadgeStatus
}

func newReplyContext(roster *domain.Roster, now time.Time) *replyContext {
	rc := &replyContext{
		roster:    roster,
		detail:    make([]domain.BadgeStatus, roster.Len()),
		aggregate: make([]domain.BadgeStatus, roster.Len()),
	}
	for i := 0; i < roster.Len(); i++ {
		b := roster.At(i)
		rc.detail[i] = domain.ClassifyBadge(b, now, domain.StatusPolicyDetail)
		rc.aggregate[i] = domain.ClassifyBadge(b, now, domain.StatusPolicyAggregate)
	}
	return rc
}

func (rc *replyContext) hasExpiryData() bool {
	return rc.roster.Columns().DeactivationDate
}

func countActive(statuses []domain.BadgeStatus) (active, inactive int) {
	for _, s := range statuses {
		if s.Active {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive
}

func (rc *replyContext) selectBadges(keep func(domain.BadgeStatus) bool) []domain.Badge {
	var out []domain.Badge
	for i, s := range rc.detail {
		if keep(s) {
			out = append(out, rc.roster.At(i))
		}
	}
	return out
}

func (rc *replyContext) expired() []domain.Badge {
	return rc.selectBadges(func(s domain.BadgeStatus) bool { return s.Expired })
}

func (rc *replyContext) expiringSoon() []domain.Badge {
	return rc.selectBadges(domain.BadgeStatus.ExpiringSoon)
}

func listingName(b domain.Badge) string {
	if name := b.DisplayName(); name != "" {
		return name
	}
	return "N/A"
}

func replyGreeting(rc *replyContext) string {
	active, inactive := countActive(rc.detail)
	return fmt.Sprintf("Bonjour !\n- Badges actifs : %d\n- Inactifs : %d\n- Total : %d",
		active, inactive, rc.roster.Len())
}

func replyFullReport(rc *replyContext) string {
	active, inactive := countActive(rc.aggregate)

	lines := []string{
		"Statistiques globales :",
		fmt.Sprintf("- Total : %d", rc.roster.Len()),
		fmt.Sprintf("- Actifs : %d", active),
		fmt.Sprintf("- Inactifs : %d", inactive),
	}
	if rc.roster.Columns().VIP {
		vips := rc.selectBadges(func(s domain.BadgeStatus) bool { return s.VIP })
		lines = append(lines, fmt.Sprintf("- VIP : %d", len(vips)))
	} else {
		lines = append(lines, "- VIP : colonne absente")
	}
	if rc.hasExpiryData() {
		lines = append(lines,
			fmt.Sprintf("- Expirés : %d", len(rc.expired())),
			fmt.Sprintf("- Expirant dans 30 jours : %d", len(rc.expiringSoon())),
		)
	}

	return strings.Join(lines, "\n")
}

// listBadges renders a header and up to maxListedBadges dated lines.
func listBadges(badges []domain.Badge, header, dateLabel string) string {
	lines := []string{fmt.Sprintf(header, len(badges))}
	for _, b := range badges[:min(len(badges), maxListedBadges)] {
		lines = append(lines, fmt.Sprintf("- %s (%s %s)",
			listingName(b), dateLabel, domain.FormatDate(*b.DeactivationDate)))
	}
	if len(badges) > maxListedBadges {
		lines = append(lines, fmt.Sprintf("...et %d autres.", len(badges)-maxListedBadges))
	}
	return strings.Join(lines, "\n")
}

func replyExpiredList(rc *replyContext) string {
	if !rc.hasExpiryData() {
		return ReplyNoExpiryData
	}
	expired := rc.expired()
	if len(expired) == 0 {
		return ReplyNoneExpired
	}
	return listBadges(expired, "%d badge(s) expirés :", "expiré le")
}

func replyExpiringList(rc *replyContext) string {
	if !rc.hasExpiryData() {
		return ReplyNoExpiryData
	}
	expiring := rc.expiringSoon()
	if len(expiring) == 0 {
		return ReplyNoneExpiring
	}
	return listBadges(expiring, "%d badge(s) expirent ce mois :", "expire le")
}

func replyVIPList(rc *replyContext) string {
	if !rc.roster.Columns().VIP {
		return ReplyVIPAbsent
	}

	var vipIdx []int
	for i, s := range rc.detail {
		if s.VIP {
			vipIdx = append(vipIdx, i)
		}
	}

	lines := []string{fmt.Sprintf("Nombre total de VIP : %d", len(vipIdx))}
	for _, i := range vipIdx[:min(len(vipIdx), maxListedVIPs)] {
		status := "Inactif"
		if rc.detail[i].Active {
			status = "Actif"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", listingName(rc.roster.At(i)), status))
	}
	return strings.Join(lines, "\n")
}

func replyStatusSummary(rc *replyContext) string {
	active, inactive := countActive(rc.detail)
	reply := fmt.Sprintf("- Actifs : %d\n- Inactifs : %d", active, inactive)
	if rc.hasExpiryData() {
		reply += fmt.Sprintf("\n- Expirés : %d\n- Expirant dans 30 jours : %d",
			len(rc.expired()), len(rc.expiringSoon()))
	}
	return reply
}
