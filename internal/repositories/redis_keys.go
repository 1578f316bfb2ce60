package repositories

import "fmt"

const (
	SESSION_KEY = "session:%s" // <sessionID>
	POST_KEY    = "post:%d"    // <postID>
)

func SessionKey(sessionID string) string {
	return fmt.Sprintf(SESSION_KEY, sessionID)
}

func PostKey(postID int) string {
	return fmt.Sprintf(POST_KEY, postID)
}
