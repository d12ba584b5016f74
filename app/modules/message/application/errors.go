package messageservice

import "github.com/Black-And-White-Club/dugout/app/shared/apperr"

var (
	ErrTeamNotFound    = apperr.NotFound("team not found")
	ErrMessageNotFound = apperr.NotFound("message not found")
	ErrCursorNotFound  = apperr.NotFound("cursor message not found in this channel")
	ErrNotTeamMember   = apperr.Forbidden("you are not a member of this team")
	ErrImportantOnly   = apperr.Forbidden("only managers and admins may post to the important channel")
	ErrNotAuthor       = apperr.Forbidden("only the author may edit a message")
	ErrCannotDelete    = apperr.Forbidden("only the author or a team manager may delete a message")
	ErrCannotPin       = apperr.Forbidden("only team managers and admins may pin messages")
	ErrDeleted         = apperr.Blocked("message has been deleted")
	ErrBadReply        = apperr.Validation("reply must reference a message on the same team").WithDetail("field", "replyToId")
	ErrTwoCursors      = apperr.BadRequest("use either before or after, not both")
)
