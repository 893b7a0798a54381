package uf

// ReadOptions configures read_uf's field selection and renaming.
type ReadOptions struct {
	// FieldNames maps the file's 2-byte data-type tag to a
	// caller-visible field name. Unmapped fields are still included
	// under their raw tag — this is opt-in renaming only, unlike the
	// filter semantics of peer readers in this ecosystem.
	FieldNames map[string]string

	// FileFieldNames forces the raw 2-byte tag as the field key,
	// ignoring FieldNames, when true.
	FileFieldNames bool

	// ExcludeFields is the set of final (post-renaming) field names to
	// drop.
	ExcludeFields map[string]struct{}

	// AdditionalMetadata is accepted for interface symmetry with peer
	// readers and otherwise ignored.
	AdditionalMetadata any
}

// resolveFieldName applies FileFieldNames/FieldNames precedence for a
// single raw data_type tag.
func (o ReadOptions) resolveFieldName(rawTag string) string {
	if o.FileFieldNames {
		return rawTag
	}
	if name, ok := o.FieldNames[rawTag]; ok {
		return name
	}
	return rawTag
}

// excluded reports whether name should be dropped from the produced
// Volume.
func (o ReadOptions) excluded(name string) bool {
	if o.ExcludeFields == nil {
		return false
	}
	_, ok := o.ExcludeFields[name]
	return ok
}

// ParseOptions builds a ReadOptions from a generic key/value map,
// rejecting unrecognized keys with InvalidOption.
func ParseOptions(raw map[string]any) (ReadOptions, error) {
	var opts ReadOptions
	for k, v := range raw {
		switch k {
		case "field_names":
			m, ok := v.(map[string]string)
			if !ok {
				return ReadOptions{}, newOptionError("field_names must be a map[string]string")
			}
			opts.FieldNames = m
		case "file_field_names":
			b, ok := v.(bool)
			if !ok {
				return ReadOptions{}, newOptionError("file_field_names must be a bool")
			}
			opts.FileFieldNames = b
		case "exclude_fields":
			switch s := v.(type) {
			case []string:
				opts.ExcludeFields = make(map[string]struct{}, len(s))
				for _, name := range s {
					opts.ExcludeFields[name] = struct{}{}
				}
			case map[string]struct{}:
				opts.ExcludeFields = s
			default:
				return ReadOptions{}, newOptionError("exclude_fields must be a []string")
			}
		case "additional_metadata":
			opts.AdditionalMetadata = v
		default:
			return ReadOptions{}, newOptionError("unrecognized option %q", k)
		}
	}
	return opts, nil
}
