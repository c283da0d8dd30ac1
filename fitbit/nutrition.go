package fitbit

import (
	"context"
	"fmt"
	"net/url"
)

// https://dev.fitbit.com/build/reference/web-api/nutrition/

func (c *Client) GetFavoriteFoods(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "user/-/foods/log/favorite.json")
}

func (c *Client) GetFrequentFoods(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "user/-/foods/log/frequent.json")
}

func (c *Client) GetRecentFoods(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "user/-/foods/log/recent.json")
}

func (c *Client) GetFood(ctx context.Context, foodID string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("foods/%s.json", url.PathEscape(foodID)), nil)
}

func (c *Client) GetFoodLocales(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "foods/locales.json")
}

func (c *Client) GetFoodUnits(ctx context.Context) ([]Response, error) {
	return c.getArray(ctx, APIVersion1, "foods/units.json")
}

func (c *Client) GetFoodGoals(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1, "user/-/foods/log/goal.json", nil)
}

func (c *Client) GetFoodLog(ctx context.Context, date string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/foods/log/date/%s.json", c.dateOrToday(date)), nil)
}

func (c *Client) GetMeal(ctx context.Context, mealID string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/meals/%s.json", url.PathEscape(mealID)), nil)
}

func (c *Client) GetMeals(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1, "user/-/meals.json", nil)
}

func (c *Client) GetWaterGoal(ctx context.Context) (Response, error) {
	return c.getJSON(ctx, APIVersion1, "user/-/foods/log/water/goal.json", nil)
}

func (c *Client) GetWaterLog(ctx context.Context, date string) (Response, error) {
	return c.getJSON(ctx, APIVersion1, fmt.Sprintf("user/-/foods/log/water/date/%s.json", c.dateOrToday(date)), nil)
}

// SearchFoods returns the foods array matching query
func (c *Client) SearchFoods(ctx context.Context, query string) ([]Response, error) {
	return c.getList(ctx, APIVersion1, "foods/search.json", url.Values{"query": []string{query}}, "foods")
}

func (c *Client) GetNutritionTimeSeriesByDate(ctx context.Context, resource NutritionResource, date string, period Period) (Response, error) {
	path := fmt.Sprintf("user/-/foods/log/%s/date/%s/%s.json", resource, c.dateOrToday(date), period)
	return c.getJSON(ctx, APIVersion1, path, nil)
}

func (c *Client) GetNutritionTimeSeriesByRange(ctx context.Context, resource NutritionResource, startDate, endDate string) (Response, error) {
	path := fmt.Sprintf("user/-/foods/log/%s/date/%s/%s.json", resource, c.dateOrToday(startDate), c.dateOrToday(endDate))
	return c.getJSON(ctx, APIVersion1, path, nil)
}
