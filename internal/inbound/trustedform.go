package inbound

import (
	"sort"
	"strings"

	"leadconduit-classic/internal/model"
)

// TrustedFormCertURLField is the canonical name of the TrustedForm
// certificate URL.
const TrustedFormCertURLField = "trustedform_cert_url"

const trustedFormAlias = "xxtrustedformcerturl"

// NormalizeTrustedFormCertURL returns a copy of r in which any top-level key
// matching xxTrustedFormCertUrl, in any case, is renamed to
// trustedform_cert_url. When several spellings are present the last in
// sorted order wins.
func NormalizeTrustedFormCertURL(r model.Record) model.Record {
	var aliases []string
	for k := range r {
		if strings.ToLower(k) == trustedFormAlias {
			aliases = append(aliases, k)
		}
	}
	if len(aliases) == 0 {
		return r
	}
	sort.Strings(aliases)

	out := make(model.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, k := range aliases {
		out[TrustedFormCertURLField] = out[k]
		delete(out, k)
	}
	return out
}
