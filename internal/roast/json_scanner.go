package roast

// scanJSONObjects extracts top-level JSON object candidates from raw model
// output. Even with a JSON response MIME type, models occasionally wrap the
// object in prose or code fences; this walks the bytes tracking brace depth
// and string state so those wrappers are ignored.
//
// Iterating bytes is safe for the ASCII delimiters involved: UTF-8 never
// encodes them inside a multi-byte sequence.
func scanJSONObjects(s string) []string {
	var objects []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escaped {
			escaped = false
			continue
		}

		if inString {
			switch b {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				objects = append(objects, s[start:i+1])
				start = -1
			}
		}
	}

	return objects
}
