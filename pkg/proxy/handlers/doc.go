// Package handlers implements the gateway's /api routes.
//
// Every handler follows the same pattern:
//
//  1. Validate the inbound request (JSON body or multipart files). Invalid
//     input answers 400 with a stable code and nothing is forwarded.
//  2. Forward to the backend with the caller's Authorization header copied
//     verbatim.
//  3. Normalize the outcome to a types.Result through proxy.HandleError.
//  4. Serialize the Result in the route's own shape.
//
// # Response Shapes
//
//	story:             {success:true,data:{story}} / {success:false,message}
//	predict-breed(ing): backend JSON / {success:false,error:{code,message}}
//	diary, voice, s3:  backend JSON, {transcript}, {url} / {error}
//
// Backend failures keep the backend's status. Timeouts answer 504 and
// transport failures 500.
package handlers
