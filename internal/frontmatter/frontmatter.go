package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter opening delimiter found but closing delimiter is missing")

// Style captures the newline shape of a document so rewrites stay stable.
// It does not attempt to preserve original YAML formatting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Split separates `---` delimited YAML front matter from the markdown body.
//
// If the document does not start with a front matter delimiter, had is false
// and body is the full input.
func Split(content []byte) (meta []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	metaStart := len(open)
	// Empty front matter block: opening delimiter immediately followed by closing.
	if bytes.HasPrefix(content[metaStart:], open) {
		bodyStart := metaStart + len(open)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[metaStart:], closeSeq)
	if idx < 0 {
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	metaEnd := metaStart + idx + len(nl)
	bodyStart := metaStart + idx + len(closeSeq)
	return content[metaStart:metaEnd], content[bodyStart:], true, style, nil
}

// Join reassembles a document from raw front matter and body.
// If had is false, Join returns body unchanged.
func Join(meta []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	delim := []byte("---" + nl)
	out := make([]byte, 0, 2*len(delim)+len(meta)+len(body))
	out = append(out, delim...)
	out = append(out, meta...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
func ParseYAML(meta []byte) (map[string]any, error) {
	if len(meta) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(meta, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			break
		}
	}

	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
