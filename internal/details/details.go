package details

import (
	"fmt"

	"gorm.io/datatypes"
)

// Carrier is implemented by entities that own an extra-details map (Minter,
// ProjectMinterConfiguration). Every mutation runs a full load-decode-mutate-encode
// cycle against the carrier's column.
type Carrier interface {
	ExtraDetails() datatypes.JSON
	SetExtraDetails(datatypes.JSON)
}

// SetValue stores value under key, overwriting any existing entry of any kind.
func SetValue(target Carrier, key string, value Value) error {
	m, err := decodeMap(target.ExtraDetails())
	if err != nil {
		return err
	}

	jv, err := value.jsonValue(key)
	if err != nil {
		return err
	}
	m[key] = jv

	raw, err := encodeMap(m)
	if err != nil {
		return err
	}
	target.SetExtraDetails(raw)
	return nil
}

// RemoveEntry deletes the entry under key. Removing an absent key is a no-op.
func RemoveEntry(target Carrier, key string) error {
	m, err := decodeMap(target.ExtraDetails())
	if err != nil {
		return err
	}

	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)

	raw, err := encodeMap(m)
	if err != nil {
		return err
	}
	target.SetExtraDetails(raw)
	return nil
}

// AddToSet appends value to the multiset stored under key, creating the set if
// absent. Duplicates are allowed; replaying an add yields a second entry.
func AddToSet(target Carrier, key string, value Value) error {
	m, err := decodeMap(target.ExtraDetails())
	if err != nil {
		return err
	}

	var set []interface{}
	if existing, ok := m[key]; ok {
		set, ok = existing.([]interface{})
		if !ok {
			return fmt.Errorf("entry under key %q is not a set", key)
		}
	}

	jv, err := value.jsonValue(key)
	if err != nil {
		return err
	}
	m[key] = append(set, jv)

	raw, err := encodeMap(m)
	if err != nil {
		return err
	}
	target.SetExtraDetails(raw)
	return nil
}

// RemoveFromSet deletes the first element matching value from the multiset under
// key. Removing from an absent or empty set is a no-op.
func RemoveFromSet(target Carrier, key string, value Value) error {
	m, err := decodeMap(target.ExtraDetails())
	if err != nil {
		return err
	}

	existing, ok := m[key]
	if !ok {
		return nil
	}
	set, ok := existing.([]interface{})
	if !ok {
		return fmt.Errorf("entry under key %q is not a set", key)
	}

	for i, elem := range set {
		if scalarEqual(elem, value, key) {
			m[key] = append(set[:i:i], set[i+1:]...)

			raw, err := encodeMap(m)
			if err != nil {
				return err
			}
			target.SetExtraDetails(raw)
			return nil
		}
	}

	return nil
}
