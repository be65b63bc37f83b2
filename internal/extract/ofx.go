package extract

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"jose/statement-ingest/internal/currencyutils"
	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/xmlutils"
)

// ofxTransaction holds the STMTTRN fields the pipeline needs.
type ofxTransaction struct {
	Type   string
	Posted string
	Amount string
	Name   string
	Memo   string
}

var (
	sgmlTransactionRe = regexp.MustCompile(`(?is)<STMTTRN>(.*?)</STMTTRN>`)
	sgmlFieldRe       = regexp.MustCompile(`(?i)<([A-Z0-9.]+)>([^<\r\n]*)`)
)

// fromOFX reads OFX 2 (XML) documents with xmlpath and falls back to a tag
// scan for OFX 1 (SGML) files, whose leaf elements are never closed.
func fromOFX(data []byte, log logging.Logger) (string, error) {
	var txs []ofxTransaction
	if isXMLOFX(data) {
		parsed, err := parseXMLOFX(data)
		if err != nil {
			log.WithError(err).Info("OFX is not well-formed XML, scanning SGML tags")
			txs = parseSGMLOFX(data)
		} else {
			txs = parsed
		}
	} else {
		txs = parseSGMLOFX(data)
	}

	lines := make([]string, 0, len(txs))
	for i, tx := range txs {
		line, ok := tx.line()
		if !ok {
			log.Warn("Skipping incomplete OFX transaction", logging.Field{Key: logging.FieldLineNumber, Value: i + 1})
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func isXMLOFX(data []byte) bool {
	head := bytes.TrimSpace(data)
	return bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<OFX>"))
}

func parseXMLOFX(data []byte) ([]ofxTransaction, error) {
	root, err := xmlutils.ParseXML(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	paths := xmlutils.DefaultOFXPaths()
	nodes, err := xmlutils.Nodes(root, paths.Transaction)
	if err != nil {
		return nil, err
	}

	txs := make([]ofxTransaction, 0, len(nodes))
	for _, n := range nodes {
		txs = append(txs, ofxTransaction{
			Type:   xmlutils.NodeText(n, paths.Type),
			Posted: xmlutils.NodeText(n, paths.Posted),
			Amount: xmlutils.NodeText(n, paths.Amount),
			Name:   xmlutils.NodeText(n, paths.Name),
			Memo:   xmlutils.NodeText(n, paths.Memo),
		})
	}
	return txs, nil
}

func parseSGMLOFX(data []byte) []ofxTransaction {
	var txs []ofxTransaction
	for _, block := range sgmlTransactionRe.FindAllStringSubmatch(string(data), -1) {
		var tx ofxTransaction
		for _, f := range sgmlFieldRe.FindAllStringSubmatch(block[1], -1) {
			value := xmlutils.CleanText(f[2])
			switch strings.ToUpper(f[1]) {
			case "TRNTYPE":
				tx.Type = value
			case "DTPOSTED":
				tx.Posted = value
			case "TRNAMT":
				tx.Amount = value
			case "NAME":
				tx.Name = value
			case "MEMO":
				tx.Memo = value
			}
		}
		txs = append(txs, tx)
	}
	return txs
}

// line renders the transaction as a delimited CSV row. Dates come as
// YYYYMMDD[hhmmss[.xxx]][tz]; some banks write the amount with a comma.
func (t ofxTransaction) line() (string, bool) {
	if len(t.Posted) < 8 {
		return "", false
	}
	date, err := time.Parse("20060102", t.Posted[:8])
	if err != nil {
		return "", false
	}

	amountStr := t.Amount
	if !strings.Contains(amountStr, ".") {
		amountStr = strings.Replace(amountStr, ",", ".", 1)
	}
	amount, err := currencyutils.ParseAmount(amountStr)
	if err != nil || amount.IsZero() {
		return "", false
	}

	description := t.Memo
	if description == "" {
		description = t.Name
	}
	if description == "" {
		return "", false
	}

	return row(dateutils.ToBrazilianDate(date), amount.StringFixed(2), t.Type, description), true
}
