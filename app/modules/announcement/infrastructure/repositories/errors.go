package announcementdb

import "errors"

var ErrNotFound = errors.New("announcement not found")
