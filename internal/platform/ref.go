package platform

// Ref is anything the host may hand over as "the URL" of an operation.
// Implemented by RawURL, ID and ContentRef only.
type Ref interface {
	isRef()
}

type RawURL string

// ContentRef is a host content object passed back into the plugin; only its
// URL matters here.
type ContentRef struct {
	URL string
}

func (RawURL) isRef()     {}
func (ID) isRef()         {}
func (ContentRef) isRef() {}

// URLOf coerces every Ref shape to a plain string. A nil Ref yields "".
func URLOf(r Ref) string {
	switch v := r.(type) {
	case nil:
		return ""
	case RawURL:
		return string(v)
	case ID:
		return v.Value
	case *ID:
		if v == nil {
			return ""
		}
		return v.Value
	case ContentRef:
		return v.URL
	case *ContentRef:
		if v == nil {
			return ""
		}
		return v.URL
	default:
		return ""
	}
}
