package httpcodec

// Method is an HTTP request method, the Go analogue of HttpMethod.
type Method int

const (
	MethodInvalid Method = iota - 1
	MethodDELETE
	MethodGET
	MethodHEAD
	MethodPOST
	MethodPUT
	MethodCONNECT
	MethodOPTIONS
	MethodTRACE
	MethodCOPY
	MethodLOCK
	MethodMKCOL
	MethodMOVE
	MethodPROPFIND
	MethodPROPPATCH
	MethodSEARCH
	MethodUNLOCK
	MethodBIND
	MethodREBIND
	MethodUNBIND
	MethodACL
	MethodREPORT
	MethodMKACTIVITY
	MethodCHECKOUT
	MethodMERGE
	MethodNOTIFY
	MethodSUBSCRIBE
	MethodUNSUBSCRIBE
	MethodPATCH
	MethodPURGE
	MethodMKCALENDAR
	MethodLINK
	MethodUNLINK
)

var methodStrings = [...]string{
	MethodDELETE:       "DELETE",
	MethodGET:          "GET",
	MethodHEAD:         "HEAD",
	MethodPOST:         "POST",
	MethodPUT:          "PUT",
	MethodCONNECT:      "CONNECT",
	MethodOPTIONS:      "OPTIONS",
	MethodTRACE:        "TRACE",
	MethodCOPY:         "COPY",
	MethodLOCK:         "LOCK",
	MethodMKCOL:        "MKCOL",
	MethodMOVE:         "MOVE",
	MethodPROPFIND:     "PROPFIND",
	MethodPROPPATCH:    "PROPPATCH",
	MethodSEARCH:       "SEARCH",
	MethodUNLOCK:       "UNLOCK",
	MethodBIND:         "BIND",
	MethodREBIND:       "REBIND",
	MethodUNBIND:       "UNBIND",
	MethodACL:          "ACL",
	MethodREPORT:       "REPORT",
	MethodMKACTIVITY:   "MKACTIVITY",
	MethodCHECKOUT:     "CHECKOUT",
	MethodMERGE:        "MERGE",
	MethodNOTIFY:       "NOTIFY",
	MethodSUBSCRIBE:    "SUBSCRIBE",
	MethodUNSUBSCRIBE:  "UNSUBSCRIBE",
	MethodPATCH:        "PATCH",
	MethodPURGE:        "PURGE",
	MethodMKCALENDAR:   "MKCALENDAR",
	MethodLINK:         "LINK",
	MethodUNLINK:       "UNLINK",
}

var methodsByString map[string]Method

func init() {
	methodsByString = make(map[string]Method, len(methodStrings))
	for m, s := range methodStrings {
		methodsByString[s] = Method(m)
	}
}

// ParseMethod converts a request-line method token into a Method, the
// Go analogue of StringToHttpMethod.
func ParseMethod(s string) Method {
	if m, ok := methodsByString[s]; ok {
		return m
	}
	return MethodInvalid
}

// String returns the wire form of m, the Go analogue of
// HttpMethodToString.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodStrings) || methodStrings[m] == "" {
		return "<unknown>"
	}
	return methodStrings[m]
}
