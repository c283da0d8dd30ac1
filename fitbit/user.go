package fitbit

import "context"

// https://dev.fitbit.com/build/reference/web-api/user/

func (c *Client) GetProfile(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1, "user/-/profile.json", nil)
}

// GetBadges returns the badges array
func (c *Client) GetBadges(ctx context.Context) ([]Response, error) {
	return c.getList(ctx, APIVersion1, "user/-/badges.json", nil, "badges")
}

// https://dev.fitbit.com/build/reference/web-api/friends/

func (c *Client) GetFriends(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1_1, "user/-/friends.json", nil)
}

func (c *Client) GetFriendsLeaderboard(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1_1, "user/-/leaderboard/friends.json", nil)
}
