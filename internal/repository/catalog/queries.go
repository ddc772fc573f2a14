package catalog

// Table and column names follow the existing schema: quoted PascalCase,
// listing status stored as its enum ordinal.

const listingsQuery = `
SELECT l."Id", l."Title", l."Description", l."Category", l."Tags", l."ImageUrls",
       l."Price", l."PriceMin", l."PriceMax", l."Status", l."Latitude", l."Longitude",
       l."LikeCount", l."SaveCount", l."CreatedAt", b."Name"
FROM "Listings" l
LEFT JOIN "Businesses" b ON b."Id" = l."BusinessId"
WHERE l."Status" = $1
  AND ($2 = '' OR l."Category" = $2)
ORDER BY l."CreatedAt" DESC`

const eventsQuery = `
SELECT e."Id", e."Title", e."Description", e."Category", e."Tags", e."ImageUrl",
       e."Latitude", e."Longitude", e."StartDate", e."EndDate", e."Price",
       e."LikeCount", e."SaveCount", e."CreatedAt", b."Name"
FROM "Events" e
LEFT JOIN "Businesses" b ON b."Id" = e."BusinessId"
WHERE (e."EndDate" IS NULL OR e."EndDate" > $1)
  AND ($2 = '' OR e."Category" = $2)
ORDER BY e."StartDate" ASC`

const offersQuery = `
SELECT o."Id", o."Title", o."Description", o."Category", o."Tags", o."ImageUrl",
       o."OriginalPrice", o."DiscountedPrice", o."Latitude", o."Longitude",
       o."StartDate", o."EndDate", o."LikeCount", o."SaveCount", o."CreatedAt", b."Name"
FROM "Offers" o
LEFT JOIN "Businesses" b ON b."Id" = o."BusinessId"
WHERE o."EndDate" > $1
  AND ($2 = '' OR o."Category" = $2)
ORDER BY o."EndDate" ASC`
