package report

import (
	"fmt"
	"safesurf/internal/classifier"
	"safesurf/pkg/domain"
	"strconv"
	"strings"
	"time"
)

// Mark is the indicator drawn next to a row.
type Mark int

const (
	// MarkNone is used for display-only facts and for missing signals.
	MarkNone Mark = iota
	MarkGood
	MarkBad
)

func markOf(good bool) Mark {
	if good {
		return MarkGood
	}

	return MarkBad
}

// Row is one labelled fact of a tab.
type Row struct {
	Label   string
	Value   string
	Mark    Mark
	Tooltip string
}

const unknown = "unknown"

// Rows builds the rows of tab. While loading every tab shows the same
// placeholder row; on error only the error row is returned.
func (s State) Rows(tab Tab, now time.Time) []Row {
	switch s.Status {
	case StatusLoading:
		return []Row{{Label: "Status", Value: MsgLoading}}
	case StatusError:
		return []Row{{Label: "Error", Value: s.Error, Mark: MarkBad}}
	}
	if s.Data == nil || s.Verdict == nil {
		return nil
	}

	d := *s.Data
	switch tab {
	case TabOverview:
		return overviewRows(d, *s.Verdict)
	case TabGeneral:
		return generalRows(d)
	case TabSecurity:
		return securityRows(d)
	case TabTechnical:
		return technicalRows(d)
	case TabWhois:
		return whoisRows(d, now)
	default:
		return nil
	}
}

// flag renders a boolean signal whose good value is judged by good.
func flag(d domain.SignalSet, f domain.Fields, label, tooltip string, v bool, good func(bool) bool) Row {
	r := Row{Label: label, Value: unknown, Tooltip: tooltip}
	if !d.Has(f) {
		return r
	}
	r.Value = yesNo(v)
	r.Mark = markOf(good(v))

	return r
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}

	return "No"
}

func text(v string) string {
	if strings.TrimSpace(v) == "" {
		return unknown
	}

	return v
}

func overviewRows(d domain.SignalSet, v domain.Verdict) []Row {
	rows := []Row{
		{
			Label:   "Trust Score",
			Value:   fmt.Sprintf("%d / 100", v.Score),
			Mark:    markOf(v.Tier == domain.TierSafe),
			Tooltip: "A trust score below 50 indicates a potential risk. Higher scores suggest greater trustworthiness.",
		},
		{Label: "Verdict", Value: string(v.Tier), Mark: markOf(v.Tier == domain.TierSafe)},
	}

	cert := Row{Label: "SSL Certificate", Value: unknown, Tooltip: "A valid, unrevoked certificate protects the connection."}
	if d.Has(domain.FieldSSL) {
		cert.Mark = markOf(classifier.CertificateGood(d.SSL))
		cert.Value = "Invalid"
		if classifier.CertificateGood(d.SSL) {
			cert.Value = "Valid"
		}
	}
	rows = append(rows, cert, ageRow(d))

	return rows
}

func ageRow(d domain.SignalSet) Row {
	r := Row{Label: "Domain Age", Value: unknown, Tooltip: "Older domains are generally more established and trustworthy."}
	if d.Has(domain.FieldDomainAge) {
		r.Value = strconv.FormatFloat(d.DomainAgeYears, 'f', 1, 64) + " year(s)"
		r.Mark = markOf(classifier.DomainAgeGood(d.DomainAgeYears))
	}

	return r
}

func generalRows(d domain.SignalSet) []Row {
	rank := Row{Label: "Global Rank", Value: unknown, Tooltip: "A higher rank suggests better popularity and trustworthiness."}
	if d.Has(domain.FieldGlobalRank) {
		rank.Value = "unranked"
		if d.GlobalRank > 0 {
			rank.Value = strconv.FormatInt(d.GlobalRank, 10)
		}
		rank.Mark = markOf(classifier.RankGood(d.GlobalRank))
	}

	return []Row{
		ageRow(d),
		rank,
		flag(d, domain.FieldRedirects, "URL Redirects",
			"Redirects may hide the true destination, potentially indicating phishing attempts.",
			d.HasRedirects, classifier.RedirectsGood),
		flag(d, domain.FieldURLTooLong, "Too Long URL",
			"Long URLs can sometimes be used to disguise malicious links.",
			d.URLTooLong, classifier.URLLengthGood),
		flag(d, domain.FieldURLTooDeep, "Too Deep URL",
			"Overly complex URLs can also be a sign of phishing.",
			d.URLTooDeep, classifier.URLDepthGood),
	}
}

func securityRows(d domain.SignalSet) []Row {
	status := Row{Label: "HTTP Status Code", Value: unknown, Tooltip: "A status of 200 indicates that the site is accessible."}
	if d.Has(domain.FieldHTTPStatus) {
		status.Value = strconv.Itoa(d.HTTPStatus)
		status.Mark = markOf(classifier.HTTPStatusGood(d.HTTPStatus))
	}

	rows := []Row{
		status,
		flag(d, domain.FieldHSTS, "HSTS Support",
			"HSTS ensures that only HTTPS connections are allowed, increasing security.",
			d.HSTSSupported, classifier.HSTSGood),
		flag(d, domain.FieldURLShortened, "Use of URL Shortener",
			"Shortened URLs may obscure the true destination and can be risky.",
			d.IsURLShortened, classifier.ShortenerGood),
	}

	if !d.Has(domain.FieldSSL) || d.SSL == nil {
		return append(rows, Row{Label: "SSL Certificate", Value: "not provided", Mark: MarkBad})
	}

	ssl := d.SSL
	return append(rows,
		Row{Label: "Cipher Suite", Value: text(ssl.CipherSuite)},
		Row{
			Label:   "Days to Expiry",
			Value:   fmt.Sprintf("%d days", ssl.DaysToExpiry),
			Mark:    markOf(classifier.ExpiryGood(ssl.DaysToExpiry)),
			Tooltip: "Certificates close to expiry may be a risk if not renewed.",
		},
		Row{
			Label:   "Is Certificate Revoked",
			Value:   yesNo(ssl.IsRevoked),
			Mark:    markOf(classifier.RevocationGood(ssl.IsRevoked)),
			Tooltip: "A revoked SSL certificate may indicate a security issue.",
		},
		Row{Label: "Issued By", Value: text(ssl.Issuer)},
		Row{Label: "Issued To", Value: text(ssl.IssuedTo)},
		Row{Label: "Valid From", Value: ssl.ValidFrom.String()},
		Row{Label: "Valid Till", Value: ssl.ValidTill.String()},
		Row{Label: "TLS Version", Value: text(ssl.TLSVersion)},
	)
}

func technicalRows(d domain.SignalSet) []Row {
	ip := Row{
		Label:   "IP of Domain",
		Value:   unknown,
		Tooltip: "This is the IP address associated with the domain, used for network routing.",
	}
	if d.Has(domain.FieldIP) {
		ip.Value = text(d.IP)
	}

	return []Row{
		ip,
		flag(d, domain.FieldIPInURL, "IP Address Present in URL",
			"Using an IP address instead of a domain can be a phishing tactic.",
			d.IPPresentInURL, classifier.IPInURLGood),
	}
}

func whoisRows(d domain.SignalSet, now time.Time) []Row {
	if !d.Has(domain.FieldWhois) {
		return []Row{{Label: "WHOIS", Value: "not provided"}}
	}

	w := d.Whois
	expiry := Row{
		Label:   "Expiration Date",
		Value:   w.ExpirationDate.String(),
		Tooltip: "Registrations about to lapse are common for throwaway phishing domains.",
	}
	if w.ExpirationDate.Known {
		expiry.Mark = markOf(classifier.WhoisExpiryGood(w.ExpirationDate, now))
	}

	return []Row{
		{Label: "Domain Name", Value: text(w.DomainName)},
		{Label: "Registrar", Value: text(w.Registrar)},
		{Label: "Registrar URL", Value: text(w.RegistrarURL)},
		{Label: "Creation Date", Value: w.CreationDate.String()},
		expiry,
		{Label: "Updated Date", Value: w.UpdatedDate.String()},
		{Label: "Registrant Country", Value: text(w.RegistrantCountry)},
		{Label: "Registrant Name", Value: text(w.RegistrantName)},
		{Label: "Name Servers", Value: text(strings.Join(w.NameServers, ", "))},
		{Label: "Status", Value: text(strings.Join(w.Status, ", "))},
	}
}
