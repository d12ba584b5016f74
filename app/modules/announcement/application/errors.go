package announcementservice

import "github.com/Black-And-White-Club/dugout/app/shared/apperr"

var (
	ErrNotFound     = apperr.NotFound("announcement not found")
	ErrTeamNotFound = apperr.NotFound("team not found")
	ErrCannotPost   = apperr.Forbidden("managers may only post announcements to their own team")
	ErrCannotView   = apperr.Forbidden("you are not a member of this team")
)
