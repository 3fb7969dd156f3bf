// Package builder assembles the display map an issuer attaches to a
// message pack.
//
// A Presentation lists the languages the wallet should render and groups of
// elements. Each element has a title per language and points into the
// credential payload with a JSON pointer (RFC 6901), either one pointer for
// every language or one per language when Multilanguage is set:
//
//	{
//	  "languages": ["en", "sl"],
//	  "groups": [{
//	    "id": 1,
//	    "title": {"en": "Issuer", "sl": "Izdajatelj"},
//	    "elements": [
//	      {"title": {"en": "Issued", "sl": "Izdano"}, "format": "date-time", "value": "/issuanceDate"},
//	      {"title": {"en": "Name", "sl": "Ime"}, "multilanguage": true,
//	       "values": {"en": "/issuer/legalName/en", "sl": "/issuer/legalName/sl"}}
//	    ]
//	  }]
//	}
//
// Create validates and encodes a Presentation; Parse decodes and validates
// one received from an issuer.
package builder
