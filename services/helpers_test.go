package services

import "bytes"

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// importRow builds a 19-cell row with the given cells placed at the fixed
// import positions.
func importRow(id, channel, banner, chain, name, plz, city, street, glName, glEmail, status, freq, tel, email string) []string {
	row := make([]string, 19)
	row[0] = id
	row[2] = channel
	row[4] = banner
	row[5] = chain
	row[7] = name
	row[8] = plz
	row[9] = city
	row[10] = street
	row[11] = glName
	row[12] = glEmail
	row[13] = status
	row[15] = freq
	row[17] = tel
	row[18] = email
	return row
}
